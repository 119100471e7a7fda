package application

import "time"

// Clock interface supaya gampang ditest; pass start/finish dan export
// timestamps semua lewat sini.
type Clock interface {
	Now() time.Time
}

// SystemClock implementasi default, pakai time.Now()
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
