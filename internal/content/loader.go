package content

import (
	"context"
	"log"
	"sync"
	"time"
)

// Resource names one of the two text resources.
type Resource string

const (
	ResourceArtworkInfo      Resource = "artwork_info"
	ResourceCuratorNarration Resource = "curator_narration"
)

// Content holds the raw text of both resources. A resource that could not
// be fetched is empty and has an entry in Failures.
type Content struct {
	ArtworkInfo      string
	CuratorNarration string
	Failures         map[Resource]error
}

// Rendered is the display form of Content.
type Rendered struct {
	ArtworkInfo      []Block `json:"artwork_info"`
	CuratorNarration []Block `json:"curator_narration"`
}

// Render parses both texts into display blocks.
func (c Content) Render() Rendered {
	return Rendered{
		ArtworkInfo:      ParseArtworkInfo(c.ArtworkInfo),
		CuratorNarration: ParseCuratorNarration(c.CuratorNarration),
	}
}

// Loader fetches the two resources for a page.
type Loader struct {
	fetcher              Fetcher
	artworkInfoPath      string
	curatorNarrationPath string
	timeout              time.Duration
}

// NewLoader creates a Loader. A zero timeout leaves each fetch bounded only
// by ctx.
func NewLoader(fetcher Fetcher, artworkInfoPath, curatorNarrationPath string, timeout time.Duration) *Loader {
	return &Loader{
		fetcher:              fetcher,
		artworkInfoPath:      artworkInfoPath,
		curatorNarrationPath: curatorNarrationPath,
		timeout:              timeout,
	}
}

// Load fetches both resources concurrently. A failure is logged and leaves
// that resource empty; it never prevents the other from loading.
func (l *Loader) Load(ctx context.Context) Content {
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		artwork   string
		narration string
		failures  = make(map[Resource]error)
	)

	fetch := func(res Resource, resourcePath string, dst *string) {
		defer wg.Done()

		fctx := ctx
		if l.timeout > 0 {
			var cancel context.CancelFunc
			fctx, cancel = context.WithTimeout(ctx, l.timeout)
			defer cancel()
		}

		text, err := l.fetcher.Fetch(fctx, resourcePath)
		if err != nil {
			log.Printf("content: could not load %s: %v", resourcePath, err)
			mu.Lock()
			failures[res] = err
			mu.Unlock()
			return
		}
		*dst = text
	}

	wg.Add(2)
	go fetch(ResourceArtworkInfo, l.artworkInfoPath, &artwork)
	go fetch(ResourceCuratorNarration, l.curatorNarrationPath, &narration)
	wg.Wait()

	return Content{
		ArtworkInfo:      artwork,
		CuratorNarration: narration,
		Failures:         failures,
	}
}
