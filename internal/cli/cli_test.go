package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	keyerrors "github.com/diwise/record-translator/pkg/keyset/errors"
	"github.com/matryer/is"
)

func TestTypesListsRecordTypes(t *testing.T) {
	is := is.New(t)

	out, err := execute("", "types", "--config", "", "--format", "yaml")

	is.NoErr(err)
	is.Equal(out, "- type: UserInfo\n  profiles:\n  - database\n  - local\n  - remote\n- type: WeatherObserved\n  profiles:\n  - local\n  - remote\n")
}

func TestTranslateFromStdin(t *testing.T) {
	is := is.New(t)

	out, err := execute(`{"USER_NAME":"Braddles","EMAIL":"braddles@example.com","AGE":42}`,
		"translate", "--config", "", "--format", "json", "--type", "UserInfo", "--from", "local", "--to", "remote", "--input", "-")

	is.NoErr(err)
	is.Equal(out, "{\n  \"user_name\": \"Braddles\",\n  \"email_address\": \"braddles@example.com\",\n  \"user_age\": 42\n}\n")
}

func TestTranslateYAMLListToYAML(t *testing.T) {
	is := is.New(t)

	out, err := execute("- username: Braddles\n  email: braddles@example.com\n  age: 42\n",
		"translate", "--config", "", "--format", "yaml", "--type", "UserInfo", "--from", "database", "--to", "local", "--input", "-")

	is.NoErr(err)
	is.Equal(out, "- USER_NAME: Braddles\n  EMAIL: braddles@example.com\n  AGE: 42\n")
}

func TestTranslateUsesConfiguredKeySets(t *testing.T) {
	is := is.New(t)

	dir := t.TempDir()
	cfg := filepath.Join(dir, "keysets.yaml")
	is.NoErr(os.WriteFile(cfg, []byte(keySetConfig), 0o600))

	input := filepath.Join(dir, "observations.json")
	is.NoErr(os.WriteFile(input, []byte(`{"observation_id":"x","temp_c":7.5,"observed_at":"2024-05-01T10:00:00Z"}`), 0o600))

	out, err := execute("", "translate", "--config", cfg, "--format", "json", "--type", "WeatherObserved", "--from", "database", "--to", "remote", "--input", input)

	is.NoErr(err)
	is.Equal(out, "{\n  \"id\": \"x\",\n  \"temperature\": 7.5,\n  \"dateObserved\": \"2024-05-01T10:00:00Z\"\n}\n")
}

func TestTranslateReportsMissingFields(t *testing.T) {
	is := is.New(t)

	_, err := execute(`{"USER_NAME":"Braddles"}`,
		"translate", "--config", "", "--format", "json", "--type", "UserInfo", "--from", "local", "--to", "remote", "--input", "-")

	is.True(errors.Is(err, keyerrors.ErrFieldMissing))
}

func TestTranslateRejectsUnknownProfile(t *testing.T) {
	is := is.New(t)

	_, err := execute("{}", "translate", "--config", "", "--format", "json", "--type", "UserInfo", "--from", "cloud", "--to", "remote", "--input", "-")

	is.True(errors.Is(err, keyerrors.ErrUnknownProfile))
}

func TestExportRejectsBadTableNameBeforeConnecting(t *testing.T) {
	is := is.New(t)

	_, err := execute("", "export", "--config", "", "--format", "json", "--type", "UserInfo", "--table", "public.", "--to", "remote")

	is.True(err != nil) // should fail before connecting to a database
	is.True(strings.Contains(err.Error(), "invalid table name"))
}

func TestUnknownOutputFormat(t *testing.T) {
	is := is.New(t)

	_, err := execute("", "types", "--config", "", "--format", "xml")

	is.True(err != nil) // xml is not a supported format
}

func execute(stdin string, args ...string) (string, error) {
	out := &bytes.Buffer{}

	RootCmd.SetIn(strings.NewReader(stdin))
	RootCmd.SetOut(out)
	RootCmd.SetArgs(args)

	err := RootCmd.ExecuteContext(context.Background())

	return out.String(), err
}

const keySetConfig string = `
keysets:
  - type: WeatherObserved
    profile: database
    keys:
      id: observation_id
      temperature: temp_c
      humidity: relative_humidity
      dateObserved: observed_at
      refDevice: device_id
`
