package testdata

import (
	"os"

	"lanefall/internal/game"
	"lanefall/internal/parser"
)

// Chart is a tiny 4k chart at 120 BPM: four quarter-note taps walking
// across the lanes, then a one-second hold in lane 0 at t=2s.
const Chart = `#TITLE:Test Song;
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

// GetChart parses the embedded chart through the real parser.
func GetChart() (*game.Chart, error) {
	f, err := os.CreateTemp("", "lanefall-*.sm")
	if nil != err {
		return nil, err
	}
	defer os.Remove(f.Name())
	if _, err := f.WriteString(Chart); nil != err {
		f.Close()
		return nil, err
	}
	if err := f.Close(); nil != err {
		return nil, err
	}

	p := &parser.DefaultParser{}
	charts, err := p.Parse(f.Name())
	if nil != err {
		return nil, err
	}
	return charts[0], nil
}
