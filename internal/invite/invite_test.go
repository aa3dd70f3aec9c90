package invite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusops/coursebell/internal/domain"
)

func pinnedGenerator() *Generator {
	g := New("Campus")
	g.now = func() time.Time { return time.Date(2025, time.January, 2, 10, 30, 0, 0, time.UTC) }
	g.newUID = func() string { return "fixed-uid" }
	return g
}

func testRecord() domain.CourseRecord {
	return domain.CourseRecord{
		Name:    "X",
		Program: "DASH",
		Start:   time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
		End:     time.Date(2025, time.January, 12, 0, 0, 0, 0, time.UTC),
		HasEnd:  true,
	}
}

func decodeSingleEvent(t *testing.T, content string) *ical.Component {
	t.Helper()
	cal, err := ical.NewDecoder(strings.NewReader(content)).Decode()
	require.NoError(t, err)
	require.Len(t, cal.Children, 1)
	require.Equal(t, ical.CompEvent, cal.Children[0].Name)
	return cal.Children[0]
}

func propValue(t *testing.T, comp *ical.Component, name string) string {
	t.Helper()
	p := comp.Props.Get(name)
	require.NotNil(t, p, "missing property %s", name)
	return p.Value
}

func TestGenerate(t *testing.T) {
	content, err := pinnedGenerator().Generate(testRecord())
	require.NoError(t, err)

	ev := decodeSingleEvent(t, content)
	assert.Equal(t, "X", propValue(t, ev, ical.PropSummary))
	assert.Equal(t, "fixed-uid@coursebell", propValue(t, ev, ical.PropUID))
	assert.Equal(t, "20250102T103000Z", propValue(t, ev, ical.PropDateTimeStamp))
	assert.Equal(t, "Campus", propValue(t, ev, ical.PropLocation))
	assert.Equal(t, "CONFIRMED", propValue(t, ev, ical.PropStatus))
	assert.Equal(t, "OPAQUE", propValue(t, ev, ical.PropTransparency))

	// All-day range covering 10th through 12th inclusive: DTEND is
	// exclusive, so it lands on the 13th.
	assert.Equal(t, "20250110", propValue(t, ev, ical.PropDateTimeStart))
	assert.Equal(t, "20250113", propValue(t, ev, ical.PropDateTimeEnd))
	assert.Equal(t, "DATE", ev.Props.Get(ical.PropDateTimeStart).Params.Get(ical.ParamValue))
}

func TestGenerateSynthesizedDescription(t *testing.T) {
	content, err := pinnedGenerator().Generate(testRecord())
	require.NoError(t, err)

	ev := decodeSingleEvent(t, content)
	desc := propValue(t, ev, ical.PropDescription)
	for _, want := range []string{"Course: X", "Program: DASH", "Start: 2025-01-10", "End: 2025-01-12"} {
		assert.Contains(t, desc, want)
	}
}

func TestGenerateExplicitDescription(t *testing.T) {
	rec := testRecord()
	rec.Description = "Bring a laptop."

	content, err := pinnedGenerator().Generate(rec)
	require.NoError(t, err)
	ev := decodeSingleEvent(t, content)
	assert.Equal(t, "Bring a laptop.", propValue(t, ev, ical.PropDescription))
}

func TestGenerateRequiresEndDate(t *testing.T) {
	rec := testRecord()
	rec.HasEnd = false
	_, err := pinnedGenerator().Generate(rec)
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Intro_to_NLP.ics", Filename("Intro to NLP"))
	assert.Equal(t, "AI_ML_Basics.ics", Filename(`AI/ML\Basics`))
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "invites")
	records := []domain.CourseRecord{
		testRecord(),
		{Name: "No End", Start: time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)},
	}

	written, err := pinnedGenerator().WriteAll(records, dir, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, written, 1, "records without an end date are skipped")

	data, err := os.ReadFile(written[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "BEGIN:VCALENDAR")
	assert.Equal(t, "X.ics", filepath.Base(written[0]))
}
