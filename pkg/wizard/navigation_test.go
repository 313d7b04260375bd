package wizard_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/civicforms/lfpappeal/pkg/wizard"
	"github.com/stretchr/testify/assert"
)

func TestStatic(t *testing.T) {
	nav := wizard.Static("/prev", "/next", "/signout")
	r := httptest.NewRequest("GET", "/step", nil)

	assert.Equal(t, "/prev", nav.Previous(r))
	assert.Equal(t, "/next", nav.Next(r))
	assert.Equal(t, "/signout", nav.SignOut(r))
	assert.Empty(t, nav.Actions(false))
}

func TestNavigation_NilFuncsYieldEmptyURIs(t *testing.T) {
	nav := wizard.Navigation{}
	r := httptest.NewRequest("GET", "/step", nil)

	assert.Empty(t, nav.Previous(r))
	assert.Empty(t, nav.Next(r))
	assert.Empty(t, nav.SignOut(r))
}

func TestWithChangeMode_NilActionLeavesFlagInert(t *testing.T) {
	nav := wizard.WithChangeMode(wizard.Static("/prev", "/next", "/signout"), nil)

	r := httptest.NewRequest("GET", "/step?cm=1", nil)
	assert.Equal(t, "/next", nav.Next(r))
	assert.Equal(t, "/prev", nav.Previous(r))
}

func TestWithChangeMode_InterceptsOnlyFlaggedRequests(t *testing.T) {
	nav := wizard.WithChangeMode(
		wizard.Static("/prev", "/next", "/signout"),
		wizard.FixedChangeModeAction("/check-your-answers"),
	)

	flagged := httptest.NewRequest("GET", "/step?cm=1", nil)
	assert.Equal(t, "/check-your-answers", nav.Next(flagged))
	assert.Equal(t, "/check-your-answers", nav.Previous(flagged))
	assert.Equal(t, "/check-your-answers", nav.SignOut(flagged))

	plain := httptest.NewRequest("GET", "/step", nil)
	assert.Equal(t, "/next", nav.Next(plain))
	assert.Equal(t, "/prev", nav.Previous(plain))
	assert.Equal(t, "/signout", nav.SignOut(plain))
}

func TestWithChangeMode_ActionSeesMethodName(t *testing.T) {
	var methods []string
	nav := wizard.WithChangeMode(
		wizard.Static("/prev", "/next", "/signout"),
		func(r *http.Request, method string) string {
			methods = append(methods, method)
			return "/summary"
		},
	)

	r := httptest.NewRequest("GET", "/step?cm=1", nil)
	nav.Previous(r)
	nav.Next(r)
	nav.SignOut(r)

	assert.Equal(t, []string{"previous", "next", "signOut"}, methods)
}
