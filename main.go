package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/eiannone/keyboard"

	"lanefall/internal/audio"
	"lanefall/internal/config"
	"lanefall/internal/game"
	"lanefall/internal/input"
	"lanefall/internal/parser"
	"lanefall/internal/render"
	"lanefall/internal/score"
	"lanefall/internal/session"
)

func main() {
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

func pickChart(charts []*game.Chart, name string) (*game.Chart, error) {
	if name != "" || len(charts) == 1 {
		return parser.SelectDifficulty("", charts, name)
	}
	for i, c := range charts {
		fmt.Printf("%2v) %3v  %5v  %v\n", i, c.Difficulty.Msd, len(c.Notes), c.Difficulty.Name)
	}
	r, _, err := keyboard.GetSingleKey()
	if nil != err {
		return nil, err
	}
	index, err := strconv.ParseInt(string(r), 10, 64)
	if nil != err || index < 0 || index > int64(len(charts)-1) {
		return nil, errors.New("not a difficulty index")
	}
	return charts[index], nil
}

func run() error {
	config.Parse()

	var psr parser.Parser = &parser.DefaultParser{}

	var audioFile, chartFile string
	if err := filepath.Walk(*config.Directory, func(p string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		switch path.Ext(info.Name()) {
		case ".mp3", ".ogg":
			audioFile = p
		case ".sm":
			chartFile = p
		}
		return nil
	}); nil != err {
		return fmt.Errorf("unable to walk song directory: %w", err)
	}
	if audioFile == "" || chartFile == "" {
		return errors.New("unable to find .sm and .mp3/.ogg file in given directory")
	}

	charts, err := psr.Parse(chartFile)
	if nil != err {
		return err
	}
	chart, err := pickChart(charts, *config.Difficulty)
	if nil != err {
		return err
	}

	log.Printf("Opening %v (%v)\n", audioFile, chartFile)
	clock, err := audio.Open(audioFile, *config.Rate)
	if nil != err {
		return fmt.Errorf("unable to open audio source: %w", err)
	}
	defer clock.Close()

	store, err := score.OpenStore(*config.DBPath)
	if nil != err {
		return fmt.Errorf("unable to open run history: %w", err)
	}
	defer store.Close()

	inputs, stop, err := input.Listen(config.Keys(chart.Difficulty.NKeys), chart.Difficulty.NKeys)
	if nil != err {
		return err
	}
	defer func() {
		if err := input.Close(); nil != err {
			log.Println("unable to close keyboard:", err)
		}
	}()

	sess, err := session.New(chart, clock, render.NewConsole(), session.Settings{
		Table:              config.Judgements,
		MissGrace:          *config.MissGrace,
		ReleaseGrace:       *config.ReleaseGrace,
		SpawnDistance:      *config.SpawnDistance,
		NoteSpeed:          *config.NoteSpeed,
		NotesPerMultiplier: *config.NotesPerStep,
		MaxMultiplier:      *config.MaxMultiplier,
		TickPeriod:         *config.TickPeriod,
	})
	if nil != err {
		return err
	}

	if err := clock.Start(*config.Delay); nil != err {
		return fmt.Errorf("unable to start playback: %w", err)
	}

	results, err := sess.Run(inputs, stop)
	if nil != err {
		return err
	}
	if nil == results {
		return nil
	}

	sum := score.HashChart(chart)
	if best := store.Best(sum); nil != best && best.Score > results.Score {
		fmt.Printf("       Best:  %8d (%v)\n", best.Score, best.PlayedAt.Format("2006-01-02"))
	}
	if err := store.Save(&score.Record{
		Sum:        sum,
		Song:       results.Song,
		Artist:     results.Artist,
		Difficulty: results.Difficulty,
		Rate:       *config.Rate,
		Score:      results.Score,
		Accuracy:   results.AccuracyPercent,
		MaxCombo:   results.MaxCombo,
	}); nil != err {
		log.Println("unable to save run:", err)
	}
	return nil
}
