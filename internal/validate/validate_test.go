package validate

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validNomination() NominationInput {
	return NominationInput{
		Name:      "Ana Gomez",
		From:      "Córdoba",
		Expertise: "backend",
		Link:      "https://example.com/ana",
		Reason:    strings.Repeat("x", 75),
	}
}

func TestNomination_Valid(t *testing.T) {
	g := New()
	in, errs := g.Nomination(validNomination())
	require.Nil(t, errs)
	assert.Equal(t, "Ana Gomez", in.Name)
}

func TestNomination_TrimsNameAndReason(t *testing.T) {
	g := New()
	in := validNomination()
	in.Name = "  Ana Gomez  "
	in.Reason = "  " + strings.Repeat("x", 75) + "  "

	out, errs := g.Nomination(in)
	require.Nil(t, errs)
	assert.Equal(t, "Ana Gomez", out.Name)
	assert.Equal(t, strings.Repeat("x", 75), out.Reason)
}

func TestNomination_ShortReason(t *testing.T) {
	g := New()
	in := validNomination()
	in.Reason = strings.Repeat("x", 40)

	_, errs := g.Nomination(in)
	require.NotNil(t, errs)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs.Messages("reason")[0], "at least 70")
}

func TestNomination_ReportsEveryViolatedField(t *testing.T) {
	g := New()
	in := NominationInput{
		Name:      "",
		From:      "Narnia",
		Expertise: "wizard",
		Link:      "not a url",
		Reason:    "too short",
	}

	_, errs := g.Nomination(in)
	require.NotNil(t, errs)
	for _, field := range []string{"name", "from", "expertise", "link", "reason"} {
		assert.NotEmpty(t, errs.Messages(field), "expected error for %s", field)
	}
}

func TestNomination_LinkRules(t *testing.T) {
	g := New()

	in := validNomination()
	in.Link = "example.com/no-scheme"
	_, errs := g.Nomination(in)
	require.NotNil(t, errs)
	assert.Equal(t, []string{"Invalid URL"}, errs.Messages("link"))

	in = validNomination()
	in.Link = "https://example.com/" + strings.Repeat("a", 200)
	_, errs = g.Nomination(in)
	require.NotNil(t, errs)
	assert.Contains(t, errs.Messages("link")[0], "at most 200")
}

func TestNomination_ClosedSets(t *testing.T) {
	g := New()

	in := validNomination()
	in.From = "Springfield"
	_, errs := g.Nomination(in)
	assert.NotEmpty(t, errs.Messages("from"))

	in = validNomination()
	in.Expertise = "devops"
	_, errs = g.Nomination(in)
	assert.NotEmpty(t, errs.Messages("expertise"))
}

func TestLogin(t *testing.T) {
	g := New()

	_, errs := g.Login(LoginInput{Email: "admin@example.com", Password: "secret"})
	assert.Nil(t, errs)

	_, errs = g.Login(LoginInput{Email: "not-an-email", Password: ""})
	require.NotNil(t, errs)
	assert.NotEmpty(t, errs.Messages("email"))
	assert.NotEmpty(t, errs.Messages("password"))
}

func TestNominationFromForm(t *testing.T) {
	form := url.Values{
		"name":      {"Ana Gomez"},
		"from":      {"Córdoba"},
		"expertise": {"backend"},
		"link":      {"https://example.com/ana"},
		"reason":    {strings.Repeat("x", 75)},
	}
	in := NominationFromForm(form)
	assert.Equal(t, "Ana Gomez", in.Name)
	assert.Equal(t, "backend", in.Expertise)
}
