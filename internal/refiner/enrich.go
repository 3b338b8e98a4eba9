package refiner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/bodhiflow/internal/llm"
	"github.com/nguyentantai21042004/bodhiflow/internal/logger"
	"golang.org/x/sync/singleflight"
)

const (
	maxDescriptionRunes = 140
	maxEnrichWords      = 8000
)

const enrichPrompt = `You will receive transcribed text from sources such as YouTube, books and podcasts. Extract concise metadata and output it strictly as a JSON object.

Instructions:
- Output MUST be a single JSON object and nothing else (no prose, no markdown, no code fences).
- Write in the given language.
- description: a single sentence summary, at most 140 characters, plain text.
- tags: 3-5 lowercase keywords, ASCII only, hyphens for spaces, no '#'.
- If the text is missing or invalid, return {"description": null, "tags": null}.

Input:
- language: {language}
- text: {text}

Output format:
{"description": "short summary here", "tags": ["keyword1", "keyword2", "keyword3"]}`

type inferred struct {
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// enricher infers description and tags once per transcript.
type enricher struct {
	caller llm.Caller
	logger logger.Logger

	group singleflight.Group
	mu    sync.Mutex
	cache map[string]inferred
}

func newEnricher(caller llm.Caller, log logger.Logger) *enricher {
	return &enricher{
		caller: caller,
		logger: log,
		cache:  make(map[string]inferred),
	}
}

// infer never fails: errors degrade to an empty result.
func (e *enricher) infer(ctx context.Context, key, text, language string) inferred {
	e.mu.Lock()
	if v, ok := e.cache[key]; ok {
		e.mu.Unlock()
		return v
	}
	e.mu.Unlock()

	v, _, _ := e.group.Do(key, func() (interface{}, error) {
		e.mu.Lock()
		cached, ok := e.cache[key]
		e.mu.Unlock()
		if ok {
			return cached, nil
		}

		got, err := e.call(ctx, text, language)
		if err != nil {
			e.logger.Warn(ctx, "Metadata enhancement failed for %s: %v", key, err)
			return inferred{}, nil
		}
		e.mu.Lock()
		e.cache[key] = got
		e.mu.Unlock()
		return got, nil
	})
	return v.(inferred)
}

func (e *enricher) call(ctx context.Context, text, language string) (inferred, error) {
	if words := strings.Fields(text); len(words) > maxEnrichWords {
		text = strings.Join(words[:maxEnrichWords], " ")
	}
	prompt := strings.NewReplacer("{language}", language, "{text}", text).Replace(enrichPrompt)

	raw, err := e.caller.Generate(ctx, prompt)
	if err != nil {
		return inferred{}, err
	}
	return parseInferred(raw)
}

// parseInferred reads the first JSON object in raw, tolerating code fences.
func parseInferred(raw string) (inferred, error) {
	start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return inferred{}, fmt.Errorf("no JSON object in response")
	}

	var got struct {
		Description *string  `json:"description"`
		Tags        []string `json:"tags"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &got); err != nil {
		return inferred{}, fmt.Errorf("parse metadata response: %w", err)
	}

	var out inferred
	if got.Description != nil {
		d := []rune(strings.TrimSpace(*got.Description))
		if len(d) > maxDescriptionRunes {
			d = d[:maxDescriptionRunes]
		}
		out.Description = string(d)
	}
	for _, t := range got.Tags {
		if t = strings.TrimSpace(t); t != "" {
			out.Tags = append(out.Tags, t)
		}
	}
	if len(out.Tags) > 5 {
		out.Tags = out.Tags[:5]
	}
	return out, nil
}
