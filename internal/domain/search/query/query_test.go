package query

import (
	"errors"
	"strings"
	"testing"

	"github.com/dealhive/dealsearch/internal/domain"
	"github.com/dealhive/dealsearch/internal/domain/search/kind"
	"github.com/dealhive/dealsearch/internal/domain/search/sortmode"
)

func TestNew_Defaults(t *testing.T) {
	q, err := New(Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Text() != "" {
		t.Errorf("expected empty text, got %q", q.Text())
	}
	if q.Kind() != kind.All {
		t.Errorf("expected kind all, got %q", q.Kind())
	}
	if q.Sort() != sortmode.Relevance {
		t.Errorf("expected sort relevance, got %q", q.Sort())
	}
	if q.Page() != 1 {
		t.Errorf("expected page 1, got %d", q.Page())
	}
	if q.Limit() != DefaultLimit {
		t.Errorf("expected limit %d, got %d", DefaultLimit, q.Limit())
	}
	if q.HasGeo() {
		t.Error("expected no geo filter")
	}
}

func TestNew_TrimsText(t *testing.T) {
	q, err := New(Params{"q": "  laptop deals  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Text() != "laptop deals" {
		t.Errorf("expected trimmed text, got %q", q.Text())
	}
}

func TestNew_RejectsTooLongQuery(t *testing.T) {
	_, err := New(Params{"q": strings.Repeat("a", MaxQueryLength+1)})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Param != "q" {
		t.Errorf("expected param q, got %+v", ve)
	}
}

func TestNew_RejectsInvalidKindAndSort(t *testing.T) {
	if _, err := New(Params{"type": "widgets"}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error for type, got %v", err)
	}
	if _, err := New(Params{"sort": "random"}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error for sort, got %v", err)
	}
}

func TestNew_ClampsPagination(t *testing.T) {
	tests := []struct {
		name      string
		params    Params
		wantPage  int
		wantLimit int
	}{
		{"negative page", Params{"page": -3}, 1, DefaultLimit},
		{"zero limit", Params{"limit": 0}, 1, DefaultLimit},
		{"limit over max", Params{"limit": 500}, 1, MaxResults},
		{"string values", Params{"page": "3", "limit": "50"}, 3, 50},
		{"garbage strings", Params{"page": "abc", "limit": "xyz"}, 1, DefaultLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := New(tt.params)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if q.Page() != tt.wantPage {
				t.Errorf("page = %d, want %d", q.Page(), tt.wantPage)
			}
			if q.Limit() != tt.wantLimit {
				t.Errorf("limit = %d, want %d", q.Limit(), tt.wantLimit)
			}
		})
	}
}

func TestNew_Offset(t *testing.T) {
	q, err := New(Params{"page": 3, "limit": 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Offset() != 20 {
		t.Errorf("offset = %d, want 20", q.Offset())
	}
}

func TestNew_TagsCoercion(t *testing.T) {
	t.Run("comma string", func(t *testing.T) {
		q, _ := New(Params{"tags": "laptop, audio , "})
		want := []string{"laptop", "audio"}
		if len(q.Tags()) != len(want) {
			t.Fatalf("tags = %v, want %v", q.Tags(), want)
		}
		for i := range want {
			if q.Tags()[i] != want[i] {
				t.Errorf("tags[%d] = %q, want %q", i, q.Tags()[i], want[i])
			}
		}
	})
	t.Run("slice", func(t *testing.T) {
		q, _ := New(Params{"tags": []string{"coffee"}})
		if len(q.Tags()) != 1 || q.Tags()[0] != "coffee" {
			t.Errorf("tags = %v, want [coffee]", q.Tags())
		}
	})
	t.Run("empty", func(t *testing.T) {
		q, _ := New(Params{"tags": " , "})
		if q.Tags() != nil {
			t.Errorf("tags = %v, want nil", q.Tags())
		}
	})
}

func TestNew_BoolCoercion(t *testing.T) {
	q, _ := New(Params{"has_coupon": "true", "featured": true})
	if !q.HasCoupon() || !q.Featured() {
		t.Errorf("expected both flags set, got has_coupon=%v featured=%v", q.HasCoupon(), q.Featured())
	}

	q, _ = New(Params{"has_coupon": "yes", "featured": "1"})
	if q.HasCoupon() || q.Featured() {
		t.Error("only the string \"true\" should coerce to true")
	}
}

func TestNew_GeoDefaults(t *testing.T) {
	t.Run("radius defaulted", func(t *testing.T) {
		q, err := New(Params{"latitude": 40.7, "longitude": -74.0})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !q.HasGeo() {
			t.Fatal("expected geo filter")
		}
		if q.RadiusKm() != 50 {
			t.Errorf("radius = %v, want 50", q.RadiusKm())
		}
	})
	t.Run("explicit radius", func(t *testing.T) {
		q, _ := New(Params{"latitude": "40.7", "longitude": "-74.0", "radius": "10"})
		if q.RadiusKm() != 10 {
			t.Errorf("radius = %v, want 10", q.RadiusKm())
		}
	})
	t.Run("latitude alone ignored", func(t *testing.T) {
		q, _ := New(Params{"latitude": 40.7})
		if q.HasGeo() || q.RadiusKm() != 0 {
			t.Errorf("expected no geo filter, got radius %v", q.RadiusKm())
		}
	})
	t.Run("out of range rejected", func(t *testing.T) {
		_, err := New(Params{"latitude": 95.0, "longitude": 0.0})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func TestCacheKey_Stability(t *testing.T) {
	a, _ := New(Params{"q": "Laptop", "limit": "20", "tags": "a,b"})
	b, _ := New(Params{"q": "laptop", "limit": 20, "tags": []string{"a", "b"}})
	if a.CacheKey() != b.CacheKey() {
		t.Errorf("equivalent queries should share a key:\n%s\n%s", a.CacheKey(), b.CacheKey())
	}

	c, _ := New(Params{"q": "laptop", "page": 2})
	if a.CacheKey() == c.CacheKey() {
		t.Error("different pages must not share a key")
	}
}
