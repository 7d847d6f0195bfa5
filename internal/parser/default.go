package parser

import (
	"errors"
	"math/big"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"lanefall/internal/game"
)

var errNoCharts = errors.New("no playable note sections")

type DefaultParser struct{}

type bpm struct {
	StartingBeat float64
	Value        float64
}

func (p *DefaultParser) getSecondsPerNote(rates []bpm, currentBeat float64, bpn float64) float64 {
	sel := float64(0.0)
	for _, b := range rates {
		if currentBeat >= b.StartingBeat {
			sel = b.Value
		} else {
			break
		}
	}
	secondsPerBeat := 60.0 / sel
	return bpn * secondsPerBeat
}

// 0 – No note
// 1 – Normal note
// 2 – Hold head
// 3 – Hold/Roll tail
// 4 – Roll head
// M – Mine (or other negative note)
// K – Automatic keysound
// L – Lift note
// F – Fake note

func (p *DefaultParser) mapToNote(ch byte) bool {
	return ch == '1' || ch == '2' || ch == '4' || ch == 'M'
}

func tag(meta, name string) string {
	for _, mdl := range strings.Split(meta, "\n#") {
		mdl = strings.TrimPrefix(strings.TrimSpace(mdl), "#")
		if strings.HasPrefix(mdl, name+":") {
			mdl = strings.TrimPrefix(mdl, name+":")
			return strings.TrimSuffix(mdl, ";")
		}
	}
	return ""
}

func (p *DefaultParser) Parse(file string) ([]*game.Chart, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, &ParseError{File: file, Field: "file", Err: err}
	}

	str := strings.ReplaceAll(string(data), "\r", "")
	sections := strings.Split(str, "#NOTES:")
	meta := sections[0]
	difficulties := []game.Difficulty{}
	for _, section := range sections[1:] {
		lines := strings.SplitN(section, "\n", 7)
		if len(lines) < 7 {
			return nil, &ParseError{File: file, Field: "NOTES", Err: errors.New("truncated note section header")}
		}
		chartType := strings.TrimSpace(lines[1])
		chartType = strings.TrimSuffix(chartType, ":")
		nKeys, ok := game.NKeyMap[chartType]
		if !ok {
			continue
		}
		difficulties = append(difficulties, game.Difficulty{
			Name:    strings.TrimSuffix(strings.TrimSpace(lines[3]), ":"),
			Msd:     strings.TrimSuffix(strings.TrimSpace(lines[4]), ":"),
			Section: lines[6],
			NKeys:   nKeys,
		})
	}

	song := tag(meta, "TITLE")
	artist := tag(meta, "ARTIST")

	offset := 0.0
	if v := tag(meta, "OFFSET"); v != "" {
		offs, err := strconv.ParseFloat(v, 64)
		if nil != err {
			return nil, &ParseError{File: file, Field: "OFFSET", Err: err}
		}
		offset = -offs
	}

	bpms := []bpm{}
	if v := tag(meta, "BPMS"); v != "" {
		v = strings.ReplaceAll(v, "\n", "")
		for _, pair := range strings.Split(v, ",") {
			as := strings.Split(pair, "=")
			if len(as) != 2 {
				return nil, &ParseError{File: file, Field: "BPMS", Err: errors.New("want beat=bpm pairs")}
			}
			sb, err := strconv.ParseFloat(as[0], 64)
			if nil != err {
				return nil, &ParseError{File: file, Field: "BPMS", Err: err}
			}
			value, err := strconv.ParseFloat(as[1], 64)
			if nil != err {
				return nil, &ParseError{File: file, Field: "BPMS", Err: err}
			}
			bpms = append(bpms, bpm{StartingBeat: sb, Value: value})
		}
	}
	if len(bpms) == 0 {
		return nil, &ParseError{File: file, Field: "BPMS", Err: errors.New("missing or empty")}
	}

	charts := []*game.Chart{}
	for _, difficulty := range difficulties {
		chart, err := p.parseSection(difficulty, bpms, offset)
		if nil != err {
			return nil, &ParseError{File: file, Field: "NOTES " + difficulty.Name, Err: err}
		}
		chart.Song = song
		chart.Artist = artist
		charts = append(charts, chart)
	}

	if len(charts) == 0 {
		return nil, &ParseError{File: file, Field: "NOTES", Err: errNoCharts}
	}

	return charts, nil
}

func (p *DefaultParser) parseSection(difficulty game.Difficulty, bpms []bpm, offset float64) (*game.Chart, error) {
	// Start time of first note
	seconds := offset
	var currentBeat float64 = 0.0

	notes := []game.Note{}
	mineCount := 0
	holdCount := 0

	// Open hold head per column, -1 when none
	heads := make([]int, difficulty.NKeys)
	for i := range heads {
		heads[i] = -1
	}

	blocks := strings.Split(difficulty.Section, "\n,")
	for _, block := range blocks {
		lines := []string{}
		bls := strings.Split(block, "\n")
		for _, l := range bls {
			if strings.HasPrefix(l, " ") || strings.Contains(l, "-") {
				continue
			}
			l = strings.TrimSpace(l)
			if len(l) >= int(difficulty.NKeys) {
				lines = append(lines, l)
			}
		}

		// Beat count is 4 per block
		lineCount := int64(len(lines))
		if lineCount == 0 {
			continue
		}
		beatsPerNote := 4.0 / float64(lineCount) // 1/4, 1/8, 1/16, 1/24 etc

		for i, line := range lines {
			chs := []byte(line)
			r := big.NewRat(int64(i*4), lineCount)
			denom := r.Denom().Int64()
			secondsPerNote := p.getSecondsPerNote(bpms, currentBeat, beatsPerNote)
			at := time.Duration(seconds * float64(time.Second))

			for col := 0; col < int(difficulty.NKeys) && col < len(chs); col++ {
				c := chs[col]
				if c == '3' {
					// Tail of a previously opened hold in this column
					if heads[col] >= 0 {
						head := &notes[heads[col]]
						head.Duration = at - head.Time
						heads[col] = -1
					}
					continue
				}
				if !p.mapToNote(c) {
					continue
				}
				if c == 'M' {
					mineCount++
				}
				notes = append(notes, game.Note{
					Lane:   uint8(col),
					Denom:  int(denom),
					IsMine: c == 'M',
					Time:   at,
				})
				if c == '2' || c == '4' {
					holdCount++
					heads[col] = len(notes) - 1
				}
			}

			seconds += secondsPerNote
			currentBeat += beatsPerNote
		}
	}

	// Downstream scheduling and judging assume ordered traversal.
	sort.SliceStable(notes, func(i, j int) bool {
		return game.Less(&notes[i], &notes[j])
	})
	noteCount := 0
	for i := range notes {
		notes[i].Index = i
		if !notes[i].IsMine {
			noteCount++
		}
	}

	return &game.Chart{
		Difficulty: difficulty,
		Notes:      notes,
		NoteCount:  int64(noteCount),
		HoldCount:  int64(holdCount),
		MineCount:  int64(mineCount),
	}, nil
}
