package hydrate

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type widgetSettings struct {
	Limit   int    `json:"limit"`
	Title   string `json:"title"`
	Enabled bool   `json:"enabled"`
}

func TestDecoderFromFixtures(t *testing.T) {
	fx := loadFixture(t, "attributes.json")

	for _, tc := range fx.Cases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			options := []DecoderOption[widgetSettings]{
				WithDefaults(widgetSettings{Limit: 100, Title: "default"}),
				WithPreHook[widgetSettings](NormalizeKeys),
				WithPreHook[widgetSettings](NumericKeys("limit")),
			}
			if tc.Strict {
				options = append(options, WithDisallowUnknownFields[widgetSettings]())
			}
			decoder := NewDecoder(options...)

			result, err := decoder.Decode(Context{Component: "Widget", ID: tc.Name}, tc.Input)

			if tc.ExpectErr != "" {
				if err == nil {
					t.Fatalf("expected error %q, got nil", tc.ExpectErr)
				}
				if !strings.Contains(err.Error(), tc.ExpectErr) {
					t.Fatalf("expected error containing %q, got %v", tc.ExpectErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected decode error: %v", err)
			}
			if diff := cmp.Diff(tc.Expect, result); diff != "" {
				t.Fatalf("decoded mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecoderNilPayloadYieldsDefaults(t *testing.T) {
	decoder := NewDecoder(WithDefaults(widgetSettings{Limit: 7}))
	got, err := decoder.Decode(Context{Component: "Widget"}, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Limit != 7 {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestDecoderPostHookError(t *testing.T) {
	boom := errors.New("limit too small")
	decoder := NewDecoder(WithPostHook[widgetSettings](func(_ Context, s *widgetSettings) error {
		if s.Limit < 10 {
			return boom
		}
		return nil
	}))
	_, err := decoder.Decode(Context{Component: "Widget", ID: "w1"}, map[string]any{"limit": 3})
	if !errors.Is(err, boom) {
		t.Fatalf("expected post-hook error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Widget#w1") {
		t.Fatalf("expected context in error, got %v", err)
	}
}

func TestDecoderDoesNotMutatePayload(t *testing.T) {
	payload := map[string]any{"data-limit": "5"}
	decoder := NewDecoder(
		WithPreHook[widgetSettings](NormalizeKeys),
		WithPreHook[widgetSettings](NumericKeys("limit")),
	)
	if _, err := decoder.Decode(Context{}, payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["data-limit"] != "5" || len(payload) != 1 {
		t.Fatalf("payload was mutated: %#v", payload)
	}
}

func TestCamelKey(t *testing.T) {
	cases := map[string]string{
		"title":                           "title",
		"maximumDescriptionLength":        "maximumDescriptionLength",
		"maximum-description-length":      "maximumDescriptionLength",
		"data-maximum-description-length": "maximumDescriptionLength",
		" data-title ":                    "title",
		"Data-Thing":                      "dataThing",
		"double--dash":                    "doubleDash",
	}
	for in, want := range cases {
		if got := CamelKey(in); got != want {
			t.Fatalf("CamelKey(%q): expected %q, got %q", in, want, got)
		}
	}
}

type fixture struct {
	Description string        `json:"description"`
	Cases       []fixtureCase `json:"cases"`
}

type fixtureCase struct {
	Name      string         `json:"name"`
	Input     map[string]any `json:"input"`
	Expect    widgetSettings `json:"expect"`
	ExpectErr string         `json:"expectErr"`
	Strict    bool           `json:"strict"`
}

func loadFixture(t *testing.T, name string) fixture {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("failed to read hydrate fixture %q: %v", name, err)
	}
	var fx fixture
	if err := json.Unmarshal(raw, &fx); err != nil {
		t.Fatalf("failed to unmarshal hydrate fixture %q: %v", name, err)
	}
	return fx
}
