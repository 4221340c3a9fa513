// ABOUTME: Tests for the column registry and layout operations
// ABOUTME: Covers formatting, sanitizing saved layouts, moving, hiding and resizing
package columns

import (
	"testing"

	"github.com/harperreed/dealgrid/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keysOf(l Layout) []string {
	var out []string
	for _, s := range l {
		out = append(out, s.Key)
	}
	return out
}

func TestDefaultRegistryFormats(t *testing.T) {
	d := models.Deal{
		Name:        "Deal",
		Owner:       models.Owner{Name: "Mike Chen", Initials: "MC"},
		Amount:      models.Dollars(45000),
		Probability: 60,
		Tags:        []string{"Marketing", "SaaS"},
	}
	r := Default()

	amount, ok := r.Lookup("amount")
	require.True(t, ok)
	assert.Equal(t, "$45,000", amount.Format(d))

	prob, ok := r.Lookup("probability")
	require.True(t, ok)
	assert.Equal(t, "60%", prob.Format(d))
	assert.Equal(t, "60", prob.Text(d))

	owner, _ := r.Lookup("owner")
	assert.Equal(t, "Mike Chen", owner.Text(d))

	tags, _ := r.Lookup("tags")
	assert.Equal(t, "Marketing, SaaS", tags.Text(d))

	_, ok = r.Lookup("expand")
	assert.False(t, ok)
}

func TestDefaultLayout(t *testing.T) {
	l := Default().DefaultLayout()
	assert.Equal(t, []string{
		"name", "stage", "owner", "company", "amount",
		"probability", "closeDate", "priority", "source", "tags",
	}, keysOf(l))
	assert.Len(t, l.Visible(), 10)
	assert.Equal(t, 28, l[0].Width)
}

func TestSanitize(t *testing.T) {
	r := Default()
	saved := Layout{
		{Key: "amount", Visible: true, Width: 3},
		{Key: "bogus", Visible: true, Width: 10},
		{Key: "name", Visible: false, Width: 40},
		{Key: "amount", Visible: false, Width: 50},
	}

	got := r.Sanitize(saved)

	require.Len(t, got, 10)
	assert.Equal(t, Setting{Key: "amount", Visible: true, Width: 12}, got[0])
	assert.Equal(t, Setting{Key: "name", Visible: false, Width: 40}, got[1])
	assert.Equal(t, "stage", got[2].Key)
	assert.True(t, got[2].Visible)
}

func TestMove(t *testing.T) {
	l := Default().DefaultLayout()

	moved := l.Move("stage", 2)
	assert.Equal(t, []string{"name", "owner", "company", "stage"}, keysOf(moved)[:4])
	assert.Equal(t, "stage", l[1].Key, "original untouched")

	assert.Equal(t, "amount", l.Move("amount", -99)[0].Key)
	assert.Equal(t, "name", l.Move("name", 99)[9].Key)
	assert.Equal(t, keysOf(l), keysOf(l.Move("missing", 1)))
}

func TestSetVisible(t *testing.T) {
	l := Default().DefaultLayout().SetVisible("tags", false)
	assert.Len(t, l.Visible(), 9)
	assert.Equal(t, -1, l.Visible().Index("tags"))

	only := Layout{{Key: "name", Visible: true, Width: 28}, {Key: "stage", Visible: false, Width: 16}}
	assert.True(t, only.SetVisible("name", false)[0].Visible, "last visible column stays")
}

func TestResizeClampsToMinimum(t *testing.T) {
	r := Default()
	l := r.DefaultLayout()

	assert.Equal(t, 40, r.Resize(l, "name", 40)[0].Width)
	assert.Equal(t, 20, r.Resize(l, "name", 5)[0].Width)
	assert.Equal(t, l, r.Resize(l, "bogus", 50))
}
