package score

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"lanefall/internal/game"
)

// Record is one finished run as persisted. A chart is identified by a
// hash of its note section, so the same chart file moved or renamed
// still shares a history.
type Record struct {
	ID         string
	Sum        string
	Song       string
	Artist     string
	Difficulty string
	Rate       float64
	Score      int
	Accuracy   float64
	MaxCombo   int
	PlayedAt   time.Time
}

// HashChart identifies a chart by its raw note section.
func HashChart(c *game.Chart) string {
	sum := sha256.Sum256([]byte(c.Difficulty.Section))
	return base64.StdEncoding.EncodeToString(sum[:])
}

type Store struct {
	db *sql.DB
}

func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if nil != err {
		return nil, err
	}

	initStatement := `
	create table if not exists runs
	  (
		  id text not null primary key,
		  sum text,
		  song text,
		  artist text,
		  difficulty text,
		  rate real,
		  score integer,
		  accuracy real,
		  max_combo integer,
		  played_at timestamp
	  );
	`
	if _, err := db.Exec(initStatement); nil != err {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() {
	if nil != s.db {
		s.db.Close()
	}
}

func (s *Store) Save(r *Record) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.PlayedAt.IsZero() {
		r.PlayedAt = time.Now()
	}
	_, err := s.db.Exec(
		"insert into runs(id, sum, song, artist, difficulty, rate, score, accuracy, max_combo, played_at) values(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		r.ID, r.Sum, r.Song, r.Artist, r.Difficulty, r.Rate, r.Score, r.Accuracy, r.MaxCombo, r.PlayedAt,
	)
	return err
}

// Best returns the highest-scoring run for a chart, or nil when the
// chart has never been played.
func (s *Store) Best(sum string) *Record {
	row := s.db.QueryRow(
		"select id, sum, song, artist, difficulty, rate, score, accuracy, max_combo, played_at from runs where sum = ? order by score desc limit 1",
		sum,
	)
	var r Record
	err := row.Scan(&r.ID, &r.Sum, &r.Song, &r.Artist, &r.Difficulty, &r.Rate, &r.Score, &r.Accuracy, &r.MaxCombo, &r.PlayedAt)
	if err == sql.ErrNoRows {
		return nil
	}
	if nil != err {
		log.Println("unable to load best run", err)
		return nil
	}
	return &r
}

// Load returns every run for a chart, newest first.
func (s *Store) Load(sum string) []Record {
	records := []Record{}
	rows, err := s.db.Query(
		"select id, sum, song, artist, difficulty, rate, score, accuracy, max_combo, played_at from runs where sum = ? order by played_at desc",
		sum,
	)
	if nil != err {
		if err != sql.ErrNoRows {
			log.Println("unable to load runs", err)
		}
		return records
	}
	defer rows.Close()
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Sum, &r.Song, &r.Artist, &r.Difficulty, &r.Rate, &r.Score, &r.Accuracy, &r.MaxCombo, &r.PlayedAt); nil != err {
			log.Println("unable to scan run", err)
			continue
		}
		records = append(records, r)
	}
	return records
}
