package auth

import (
	"context"
	"testing"

	"github.com/pcte/equiptrack/internal/db"
)

func TestPasscodeLifecycle(t *testing.T) {
	ctx := context.Background()
	database := db.NewTestDB(t)

	has, err := HasPasscode(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if has {
		t.Fatal("fresh database reports a passcode")
	}

	// A missing passcode never verifies, even against the empty string.
	ok, err := VerifyPasscode(ctx, database, "")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("verified against missing passcode")
	}

	if err := SetPasscode(ctx, database, "hunter2"); err != nil {
		t.Fatal(err)
	}
	has, err = HasPasscode(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if !has {
		t.Error("HasPasscode false after SetPasscode")
	}

	ok, err = VerifyPasscode(ctx, database, "hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("correct passcode rejected")
	}
	ok, err = VerifyPasscode(ctx, database, "wrong")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("wrong passcode accepted")
	}

	// Replacing the passcode invalidates the old one.
	if err := SetPasscode(ctx, database, "new-code"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := VerifyPasscode(ctx, database, "hunter2"); ok {
		t.Error("old passcode still verifies after replacement")
	}
	if ok, _ := VerifyPasscode(ctx, database, "new-code"); !ok {
		t.Error("new passcode rejected")
	}
}

func TestAdminModeRequiresPasscode(t *testing.T) {
	ctx := context.Background()
	database := db.NewTestDB(t)

	enabled, err := IsAdminModeEnabled(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if enabled {
		t.Error("admin mode enabled on fresh database")
	}

	// The flag alone is not enough without a passcode.
	if err := EnableAdminMode(ctx, database); err != nil {
		t.Fatal(err)
	}
	enabled, err = IsAdminModeEnabled(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if enabled {
		t.Error("admin mode enabled without a passcode")
	}

	if err := SetPasscode(ctx, database, "hunter2"); err != nil {
		t.Fatal(err)
	}
	enabled, err = IsAdminModeEnabled(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if !enabled {
		t.Error("admin mode not enabled with flag and passcode set")
	}

	if err := DisableAdminMode(ctx, database); err != nil {
		t.Fatal(err)
	}
	enabled, err = IsAdminModeEnabled(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if enabled {
		t.Error("admin mode still enabled after disable")
	}
}

func TestSessionSecretStable(t *testing.T) {
	ctx := context.Background()
	database := db.NewTestDB(t)

	first, err := SessionSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if first == "" {
		t.Fatal("empty session secret")
	}

	second, err := SessionSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if second != first {
		t.Error("session secret changed between calls")
	}
}
