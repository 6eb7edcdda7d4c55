package nereval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_NoMarkup(t *testing.T) {
	text := "Hà Nội là thủ đô của Việt Nam."

	set := Extract(text, text)

	assert.Equal(t, 0, set.Len())
}

func TestExtract_Flat(t *testing.T) {
	marked := `Hôm qua <ENAMEX TYPE="PERSON">John</ENAMEX> đã đến.`
	plain := Strip(marked)
	require.Equal(t, "Hôm qua John đã đến.", plain)

	set := Extract(plain, marked)

	require.Equal(t, 1, set.Len())
	e := set.Entities()[0]
	start := strings.Index(plain, "John")
	assert.Equal(t, Key{Start: start, End: start + 4, Type: Person}, e.Key)
	assert.Equal(t, "John", e.Surface)
	assert.Equal(t, KindFlat, e.Kind)
	assert.Equal(t, 1, e.Level)
}

func TestExtract_DoubleNested(t *testing.T) {
	marked := `<ENAMEX TYPE="ORGANIZATION">A <ENAMEX TYPE="LOCATION">B <ENAMEX TYPE="PERSON">C</ENAMEX></ENAMEX> D</ENAMEX>`
	plain := Strip(marked)
	require.Equal(t, "A B C D", plain)

	set := Extract(plain, marked)

	want := []Entity{
		{Key: Key{Start: 0, End: 7, Type: Organization}, Surface: "A B C D", Kind: KindDoubleNested, Level: 1},
		{Key: Key{Start: 2, End: 5, Type: Location}, Surface: "B C", Kind: KindNested, Level: 2},
		{Key: Key{Start: 4, End: 5, Type: Person}, Surface: "C", Kind: KindFlat, Level: 3},
	}
	assert.Equal(t, want, set.Entities())

	outer := 0
	for _, e := range set.Entities() {
		if e.Kind == KindDoubleNested {
			outer++
		}
	}
	assert.Equal(t, 1, outer, "double-nested pass should yield only the outer region")
}

func TestExtract_SiblingsInsideNested(t *testing.T) {
	marked := `<ENAMEX TYPE="ORGANIZATION">Sở <ENAMEX TYPE="LOCATION">Hà Nội</ENAMEX> và <ENAMEX TYPE="LOCATION">Huế</ENAMEX></ENAMEX>`
	plain := Strip(marked)

	set := Extract(plain, marked)

	require.Equal(t, 3, set.Len())
	got := set.Entities()
	assert.Equal(t, Organization, got[0].Type)
	assert.Equal(t, KindNested, got[0].Kind)
	assert.Equal(t, "Hà Nội", got[1].Surface)
	assert.Equal(t, "Huế", got[2].Surface)
	assert.Equal(t, 2, got[2].Level)
}

func TestExtract_TooDeepIsSkipped(t *testing.T) {
	marked := `<ENAMEX TYPE="ORGANIZATION">a <ENAMEX TYPE="ORGANIZATION">b <ENAMEX TYPE="LOCATION">c <ENAMEX TYPE="PERSON">d</ENAMEX></ENAMEX></ENAMEX></ENAMEX>`
	plain := Strip(marked)

	set := Extract(plain, marked)

	for _, e := range set.Entities() {
		assert.NotEqual(t, "a b c d", e.Surface, "region of four layers must not be extracted")
	}
	assert.Equal(t, 3, set.Len())
}

func TestExtract_RoundTrip(t *testing.T) {
	marked := `Ông <ENAMEX TYPE="PERSON">Nguyễn Văn A</ENAMEX>, giám đốc <ENAMEX TYPE="ORGANIZATION">Công ty <ENAMEX TYPE="LOCATION">Sài Gòn</ENAMEX></ENAMEX>, ` +
		`gặp <ENAMEX TYPE="PERSON">Nguyễn Văn A</ENAMEX> tại <ENAMEX TYPE="LOCATION">Sài Gòn</ENAMEX>.`
	plain := Strip(marked)

	set := Extract(plain, marked)

	require.Equal(t, 5, set.Len())
	for _, e := range set.Entities() {
		assert.Less(t, e.Start, e.End)
		assert.Equal(t, e.Surface, plain[e.Start:e.End])
	}
}

func TestExtract_RepeatedSurfaceKeepsDistinctOffsets(t *testing.T) {
	gold := `<ENAMEX TYPE="LOCATION">Nam</ENAMEX> và Nam`
	predicted := `Nam và <ENAMEX TYPE="LOCATION">Nam</ENAMEX>`
	plain := Strip(gold)

	g := Extract(plain, gold)
	p := Extract(plain, predicted)

	require.Equal(t, 1, g.Len())
	require.Equal(t, 1, p.Len())
	assert.Equal(t, 0, g.Entities()[0].Start)
	assert.Equal(t, strings.LastIndex(plain, "Nam"), p.Entities()[0].Start)

	c := ScoreDocument(g, p)
	assert.Equal(t, Tally{TruePositive: 0, Predicted: 1, Gold: 1}, c.Type(Location))
}

func TestExtract_RepeatedSurfaceInOrder(t *testing.T) {
	marked := `<ENAMEX TYPE="PERSON">Nam</ENAMEX> gặp <ENAMEX TYPE="PERSON">Nam</ENAMEX>`
	plain := Strip(marked)

	set := Extract(plain, marked)

	require.Equal(t, 2, set.Len())
	got := set.Entities()
	assert.Equal(t, 0, got[0].Start)
	assert.Equal(t, strings.LastIndex(plain, "Nam"), got[1].Start)
}

func TestExtract_CursorSearchWhenTextDiffers(t *testing.T) {
	gold := `Gặp <ENAMEX TYPE="PERSON">John</ENAMEX> và <ENAMEX TYPE="PERSON">John</ENAMEX> hôm nay`
	// The prediction carries an extra space, so its offsets must be
	// searched for in the gold plain text.
	predicted := `Gặp  <ENAMEX TYPE="PERSON">John</ENAMEX> và <ENAMEX TYPE="PERSON">John</ENAMEX> hôm nay`
	plain := Strip(gold)

	g := Extract(plain, gold)
	p := Extract(plain, predicted)

	assert.Equal(t, g.Entities(), p.Entities())
}

func TestExtractPair_SharedOffsetStrategy(t *testing.T) {
	// The prediction lacks the trailing newline, so it cannot use scanner
	// offsets. Gold must then be searched the same way, or the marked
	// "Nam" lands on different occurrences on each side.
	gold := "Nam gặp <ENAMEX TYPE=\"LOCATION\">Nam</ENAMEX>\n"
	predicted := strings.TrimSuffix(gold, "\n")
	plain := Strip(gold)

	g, p := ExtractPair(plain, gold, predicted)

	assert.Equal(t, g.Entities(), p.Entities())
	c := ScoreDocument(g, p)
	assert.Equal(t, Tally{TruePositive: 1, Predicted: 1, Gold: 1}, c.Type(Location))
}

func TestExtractPair_AlignedKeepsScannerOffsets(t *testing.T) {
	gold := `<ENAMEX TYPE="LOCATION">Nam</ENAMEX> và Nam`
	predicted := `Nam và <ENAMEX TYPE="LOCATION">Nam</ENAMEX>`
	plain := Strip(gold)

	g, p := ExtractPair(plain, gold, predicted)

	require.Equal(t, 1, g.Len())
	require.Equal(t, 1, p.Len())
	assert.Equal(t, 0, g.Entities()[0].Start)
	assert.Equal(t, strings.LastIndex(plain, "Nam"), p.Entities()[0].Start)
}

func TestExtract_SurfaceNotFoundIsSkipped(t *testing.T) {
	plain := "Hà Nội"
	predicted := `<ENAMEX TYPE="LOCATION">Huế</ENAMEX>`

	set := Extract(plain, predicted)

	assert.Equal(t, 0, set.Len())
}

func TestExtract_UnknownType(t *testing.T) {
	marked := `<ENAMEX TYPE="DATE">hôm nay</ENAMEX>`
	plain := Strip(marked)

	set := Extract(plain, marked)

	require.Equal(t, 1, set.Len())
	e := set.Entities()[0]
	assert.Equal(t, TypeUnknown, e.Type)
	assert.Equal(t, "", e.Type.String())
}

func TestExtract_EmptyRegionIsSkipped(t *testing.T) {
	marked := `a <ENAMEX TYPE="PERSON"></ENAMEX> b`

	set := Extract(Strip(marked), marked)

	assert.Equal(t, 0, set.Len())
}

func TestExtractor_CustomMarkup(t *testing.T) {
	m := Markup{Tag: "NE", Attr: "label"}
	marked := `<NE label="LOCATION">Đà Nẵng</NE> <ENAMEX TYPE="PERSON">x</ENAMEX>`
	plain := m.Strip(marked)
	require.Equal(t, `Đà Nẵng <ENAMEX TYPE="PERSON">x</ENAMEX>`, plain)

	set := NewExtractor(m, testLogger(t)).Extract(plain, marked)

	require.Equal(t, 1, set.Len())
	assert.Equal(t, Location, set.Entities()[0].Type)
}
