package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/auri/internal/cli"
	"github.com/julianstephens/auri/internal/constants"
	"github.com/julianstephens/auri/internal/keyring"
	"github.com/julianstephens/auri/internal/storage/postgres"
	"github.com/julianstephens/auri/internal/utils"
)

// KeyringSetCmd stores database connection credentials in the OS keyring
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring"`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	_, err := postgres.ValidateConnString(cmd.ConnectionString)
	if err != nil {
		if errors.Is(err, postgres.ErrEmbeddedCredentials) {
			// The keyring is encrypted, so a password is allowed here
			ctx.Println(cli.WarningStyle.Render("⚠️  Warning: Connection string contains embedded credentials."))
			ctx.Println("   It will be stored as-is in the encrypted OS keyring.")
		} else {
			return fmt.Errorf("invalid connection string: %w", err)
		}
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		if errors.Is(err, keyring.ErrNotPostgres) {
			return errors.New("connection string must be a postgres:// URL or a key=value DSN with host=")
		}
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	ctx.Println("✓ Connection string stored successfully in OS keyring")
	ctx.Println("  auri will use it whenever --config is left at its default")
	return nil
}

// KeyringDeleteCmd removes database connection credentials from the OS keyring
type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	err := keyring.DeleteConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}

	ctx.Println("✓ Connection string deleted from OS keyring")
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	st, err := keyring.Check()
	if err != nil {
		return fmt.Errorf("failed to read keyring: %w", err)
	}
	if !st.Available {
		ctx.Println("❌ OS keyring is not available on this system")
		ctx.Printf("  Set %s instead.\n", constants.ConnectionEnvVar)
		return errors.New("keyring unavailable")
	}

	ctx.Println("✓ OS keyring is available")
	if !st.Stored {
		ctx.Println("ℹ No connection string stored in keyring")
		return nil
	}
	ctx.Println("✓ Connection string is stored in keyring:")
	ctx.Println("  " + maskPassword(st.ConnString))
	return nil
}

const maskedPassword = "****"

// maskPassword hides the password of a postgres URL or key=value DSN.
func maskPassword(connStr string) string {
	if utils.IsPostgresURL(connStr) {
		return maskURLPassword(connStr)
	}

	fields := strings.Fields(connStr)
	changed := false
	for i, field := range fields {
		if key, _, ok := strings.Cut(field, "="); ok && key == "password" {
			fields[i] = "password=" + maskedPassword
			changed = true
		}
	}
	if !changed {
		return connStr
	}
	return strings.Join(fields, " ")
}

// maskURLPassword treats everything up to the last @ as user info, so
// passwords containing @ are masked whole.
func maskURLPassword(connStr string) string {
	scheme, rest, ok := strings.Cut(connStr, "://")
	if !ok {
		return connStr
	}
	at := strings.LastIndexByte(rest, '@')
	if at < 0 {
		return connStr
	}
	user, _, hasPassword := strings.Cut(rest[:at], ":")
	if !hasPassword {
		return connStr
	}
	return scheme + "://" + user + ":" + maskedPassword + rest[at:]
}
