package commands

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/qiwi-client/pkg/qiwi"
)

func TestLoginCommand_Flags(t *testing.T) {
	useTempConfig(t)

	out, err := runCommand(t, NewLoginCommand(), "--phone", testPhone, "--token", testToken, "--skip-verify")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as "+testPhone)

	require.NoError(t, viper.ReadInConfig())
	assert.Equal(t, testPhone, viper.GetString("phone"))
	assert.Equal(t, testToken, viper.GetString("token"))
}

func TestLoginCommand_Prompts(t *testing.T) {
	useTempConfig(t)

	cmd := NewLoginCommand()
	cmd.SetIn(strings.NewReader(testPhone + "\n" + testToken + "\n"))

	out, err := runCommand(t, cmd, "--skip-verify")
	require.NoError(t, err)
	assert.Contains(t, out, "User ID (phone number): ")
	assert.Contains(t, out, "Token: ")

	require.NoError(t, viper.ReadInConfig())
	assert.Equal(t, testToken, viper.GetString("token"))
}

func TestLoginCommand_InvalidPhone(t *testing.T) {
	useTempConfig(t)

	_, err := runCommand(t, NewLoginCommand(), "--phone", "89991234567", "--token", testToken, "--skip-verify")
	require.ErrorIs(t, err, qiwi.ErrInvalidPhone)
}

func TestLoginCommand_VerifiesToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/person-profile/v1/profile/current", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")

		if r.Header.Get("Authorization") != "Bearer "+testToken {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"errorCode":"auth.unauthorized"}`))

			return
		}

		_, _ = w.Write([]byte(`{"authInfo":{"personId":79991234567}}`))
	}))
	defer server.Close()

	path := useTempConfig(t)
	viper.Set("api", server.URL)

	_, err := runCommand(t, NewLoginCommand(), "--phone", testPhone, "--token", "wrong-token")
	require.Error(t, err)

	code, ok := qiwi.IsQiwiError(err)
	assert.True(t, ok)
	assert.Equal(t, "auth.unauthorized", code)
	assert.NoFileExists(t, path)

	_, err = runCommand(t, NewLoginCommand(), "--phone", testPhone, "--token", testToken)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestLogoutCommand(t *testing.T) {
	path := useTempConfig(t)
	loginTo("https://edge.example.com")

	out, err := runCommand(t, NewLogoutCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), testToken)
	assert.NotContains(t, string(data), testPhone)
	assert.Contains(t, string(data), "https://edge.example.com")
}
