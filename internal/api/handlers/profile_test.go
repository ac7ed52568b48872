package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/icares/memberportal/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestProfileShow(t *testing.T) {
	ts := testutil.NewTestServer(t)
	user, client := testutil.NewUserBuilder().
		WithName("Ada").
		WithEmail("ada@example.com").
		BuildAndLogin(t, ts)

	t.Run("renders profile details", func(t *testing.T) {
		resp := get(t, client, ts.URL("/profile"))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := readBody(t, resp)
		assert.Contains(t, body, user.Name)
		assert.Contains(t, body, user.Email)
		assert.Contains(t, body, "Member Since")
	})

	t.Run("edit flag renders the edit form", func(t *testing.T) {
		resp := get(t, client, ts.URL("/profile?edit=true"))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := readBody(t, resp)
		assert.Contains(t, body, "Save Changes")
		assert.Contains(t, body, `value="ada@example.com"`)
	})
}

func TestProfileUpdate(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("name and email update refreshes page and session snapshot", func(t *testing.T) {
		_, client := testutil.NewUserBuilder().
			WithName("Ada").
			WithEmail("ada@example.com").
			BuildAndLogin(t, ts)

		resp := testutil.PostForm(t, client, ts.URL("/profile"), url.Values{
			"name":  {"Ada L."},
			"email": {"ada@example.com"},
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := readBody(t, resp)
		assert.Contains(t, body, "Profile updated successfully!")
		assert.Contains(t, body, "Ada L.")

		// The session survives the update and shows the new identity
		resp = get(t, client, ts.URL("/profile"))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), "Ada L.")
	})

	t.Run("conflicting email shows error and preserves input", func(t *testing.T) {
		testutil.NewUserBuilder().WithEmail("bob@example.com").Build(t, ts.DB.DB)
		_, client := testutil.NewUserBuilder().
			WithEmail("carol@example.com").
			BuildAndLogin(t, ts)

		resp := testutil.PostForm(t, client, ts.URL("/profile"), url.Values{
			"name":  {"Carol"},
			"email": {"bob@example.com"},
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := readBody(t, resp)
		assert.Contains(t, body, "Email address already in use by another account.")
		assert.Contains(t, body, `value="bob@example.com"`)

		// The stored record is unchanged
		resp = get(t, client, ts.URL("/profile"))
		assert.Contains(t, readBody(t, resp), "carol@example.com")
	})

	t.Run("password change takes effect on next login", func(t *testing.T) {
		user, client := testutil.NewUserBuilder().
			WithPassword("oldpassword").
			BuildAndLogin(t, ts)

		resp := testutil.PostForm(t, client, ts.URL("/profile"), url.Values{
			"name":             {user.Name},
			"email":            {user.Email},
			"current_password": {"oldpassword"},
			"new_password":     {"newpassword"},
			"confirm_password": {"newpassword"},
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), "Profile updated successfully!")

		// Old password no longer works, new one does
		fresh := testutil.Browser(t)
		resp = testutil.PostForm(t, fresh, ts.URL("/login"), url.Values{
			"email":    {user.Email},
			"password": {"oldpassword"},
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), "Invalid email or password.")

		resp = testutil.PostForm(t, fresh, ts.URL("/login"), url.Values{
			"email":    {user.Email},
			"password": {"newpassword"},
		})
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("wrong current password blocks the change", func(t *testing.T) {
		user, client := testutil.NewUserBuilder().
			WithPassword("rightpassword").
			BuildAndLogin(t, ts)

		resp := testutil.PostForm(t, client, ts.URL("/profile"), url.Values{
			"name":             {user.Name},
			"email":            {user.Email},
			"current_password": {"wrongpassword"},
			"new_password":     {"newpassword"},
			"confirm_password": {"newpassword"},
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), "Current password is incorrect.")

		// Existing credentials still work
		fresh := testutil.Browser(t)
		resp = testutil.PostForm(t, fresh, ts.URL("/login"), url.Values{
			"email":    {user.Email},
			"password": {"rightpassword"},
		})
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		resp.Body.Close()
	})
}
