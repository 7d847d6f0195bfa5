package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"lanefall/internal/game"
)

const chartSource = `#TITLE:Test Song;
#ARTIST:Test Artist;
#OFFSET:0.000;
#BPMS:0.000=120.000;

#NOTES:
     dance-single:
     :
     Beginner:
     1:
     0,0,0,0,0:
1000
0100
0010
0001
,
2000
0000
3000
0000
;
`

func writeChart(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "chart.sm")
	if err := os.WriteFile(file, []byte(content), 0o644); nil != err {
		t.Fatal(err)
	}
	return file
}

func TestParse(t *testing.T) {
	p := &DefaultParser{}
	charts, err := p.Parse(writeChart(t, chartSource))
	if nil != err {
		t.Fatal("unable to parse chart:", err)
	}
	if len(charts) != 1 {
		t.Fatal("wrong chart count:", len(charts))
	}
	c := charts[0]

	if c.Song != "Test Song" || c.Artist != "Test Artist" {
		t.Error("metadata not extracted:", c.Song, c.Artist)
	}
	if c.Difficulty.Name != "Beginner" || c.Difficulty.NKeys != 4 {
		t.Error("difficulty not extracted:", c.Difficulty)
	}
	if c.NoteCount != 5 || c.HoldCount != 1 || c.MineCount != 0 {
		t.Error("wrong counts:", c.NoteCount, c.HoldCount, c.MineCount)
	}

	// 120 BPM quarter notes are half a second apart
	expected := []struct {
		lane uint8
		at   time.Duration
	}{
		{0, 0},
		{1, 500 * time.Millisecond},
		{2, 1000 * time.Millisecond},
		{3, 1500 * time.Millisecond},
		{0, 2000 * time.Millisecond},
	}
	if len(c.Notes) != len(expected) {
		t.Fatal("wrong note count:", len(c.Notes))
	}
	for i, e := range expected {
		n := c.Note(i)
		if n.Index != i || n.Lane != e.lane || n.Time != e.at {
			t.Log("note    ", i, n.Lane, n.Time)
			t.Log("expected", i, e.lane, e.at)
			t.Fail()
		}
		if n.Status != game.StatusPending {
			t.Error("parsed note not pending:", n.Status)
		}
	}

	hold := c.Note(4)
	if hold.Duration != time.Second {
		t.Error("hold tail not linked to its head:", hold.Duration)
	}
}

func TestParseSortsNotes(t *testing.T) {
	p := &DefaultParser{}
	// Two notes on one line share a time; lane order must break the tie
	src := `#TITLE:x;
#ARTIST:y;
#OFFSET:0.000;
#BPMS:0.000=120.000;

#NOTES:
     dance-single:
     :
     Hard:
     1:
     0,0,0,0,0:
0110
0000
0000
0000
;
`
	charts, err := p.Parse(writeChart(t, src))
	if nil != err {
		t.Fatal(err)
	}
	notes := charts[0].Notes
	if len(notes) != 2 || notes[0].Lane != 1 || notes[1].Lane != 2 {
		t.Error("tie not broken by lane:", notes)
	}
}

var badCharts = map[string]string{
	"missing file":     "",
	"no sections":      "#TITLE:x;\n#BPMS:0.000=120.000;\n",
	"missing bpms":     "#TITLE:x;\n#NOTES:\n     dance-single:\n     :\n     Easy:\n     1:\n     0:\n1000\n;\n",
	"malformed bpms":   "#TITLE:x;\n#BPMS:garbage;\n#NOTES:\n     dance-single:\n     :\n     Easy:\n     1:\n     0:\n1000\n;\n",
	"malformed offset": "#TITLE:x;\n#OFFSET:abc;\n#BPMS:0.000=120.000;\n#NOTES:\n     dance-single:\n     :\n     Easy:\n     1:\n     0:\n1000\n;\n",
}

func TestParseErrors(t *testing.T) {
	p := &DefaultParser{}
	for name, src := range badCharts {
		var file string
		if name == "missing file" {
			file = filepath.Join(t.TempDir(), "absent.sm")
		} else {
			file = writeChart(t, src)
		}
		_, err := p.Parse(file)
		if nil == err {
			t.Log(name, "parsed without error")
			t.Fail()
			continue
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Log(name, "returned a non-ParseError:", err)
			t.Fail()
		}
	}
}

func TestSelectDifficulty(t *testing.T) {
	p := &DefaultParser{}
	charts, err := p.Parse(writeChart(t, chartSource))
	if nil != err {
		t.Fatal(err)
	}

	c, err := SelectDifficulty("chart.sm", charts, "Beginner")
	if nil != err || c.Difficulty.Name != "Beginner" {
		t.Error("known difficulty rejected:", err)
	}
	if _, err := SelectDifficulty("chart.sm", charts, "Expert"); nil == err {
		t.Error("unknown difficulty accepted")
	}
	if c, err := SelectDifficulty("chart.sm", charts, ""); nil != err || c != charts[0] {
		t.Error("empty name must select the first chart:", err)
	}
	if _, err := SelectDifficulty("chart.sm", nil, ""); nil == err {
		t.Error("empty chart list accepted")
	}
}
