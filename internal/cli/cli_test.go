package cli_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory/internal/cli"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := cli.NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "inventory.db")
}

func TestListGolden(t *testing.T) {
	db := tempDB(t)

	out, err := run(t, "--db", db, "add-dummy")
	require.NoError(t, err)
	assert.Equal(t, "Inserted product 1\n", out)
	_, err = run(t, "--db", db, "add-dummy")
	require.NoError(t, err)

	out, err = run(t, "--db", db, "list")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "list_text", []byte(out))
}

func TestListJSON(t *testing.T) {
	db := tempDB(t)

	_, err := run(t, "--db", db, "add-dummy")
	require.NoError(t, err)

	out, err := run(t, "--db", db, "--format", "json", "list")
	require.NoError(t, err)

	var products []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Samsung Galaxy S8", products[0]["name"])
	assert.Equal(t, float64(7), products[0]["quantity"])
}

func TestSellAndDeleteAll(t *testing.T) {
	db := tempDB(t)

	_, err := run(t, "--db", db, "add-dummy")
	require.NoError(t, err)

	out, err := run(t, "--db", db, "sell", "1")
	require.NoError(t, err)
	assert.Equal(t, "Sold one of product 1, 6 left\n", out)

	_, err = run(t, "--db", db, "sell", "x")
	assert.Error(t, err)

	out, err = run(t, "--db", db, "delete-all")
	require.NoError(t, err)
	assert.Equal(t, "1 rows deleted from products database\n", out)

	_, err = run(t, "--db", db, "sell", "1")
	assert.Error(t, err)
}

func TestTypeCommand(t *testing.T) {
	db := tempDB(t)

	out, err := run(t, "--db", db, "type", "content://com.example.android.inventoryapp/products/4")
	require.NoError(t, err)
	assert.Equal(t, "vnd.android.cursor.item/com.example.android.inventoryapp/products\n", out)

	_, err = run(t, "--db", db, "type", "orders")
	assert.Error(t, err)
}

func TestInvalidFormat(t *testing.T) {
	_, err := run(t, "--db", tempDB(t), "--format", "yaml", "list")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestTokenRequiresSecret(t *testing.T) {
	t.Setenv("AUTH_SECRET", "")
	_, err := run(t, "--db", tempDB(t), "token", "front-desk")
	assert.Error(t, err)

	t.Setenv("AUTH_SECRET", "s3cret")
	out, err := run(t, "--db", tempDB(t), "token", "front-desk")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
