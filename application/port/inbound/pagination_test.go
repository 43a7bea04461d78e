package inbound

import "testing"

func TestPageQueryNormalize(t *testing.T) {
	cases := []struct {
		name            string
		query           PageQuery
		wantPage, wantN int
	}{
		{"defaults", PageQuery{}, 1, 20},
		{"negative page", PageQuery{Page: -3, Limit: 10}, 1, 10},
		{"over max", PageQuery{Page: 2, Limit: 500}, 2, 100},
		{"in range", PageQuery{Page: 4, Limit: 50}, 4, 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, limit := tc.query.Normalize(20, 100)
			if page != tc.wantPage || limit != tc.wantN {
				t.Errorf("got (%d, %d), want (%d, %d)", page, limit, tc.wantPage, tc.wantN)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	if got := Offset(1, 20); got != 0 {
		t.Errorf("first page should start at 0, got %d", got)
	}
	if got := Offset(3, 20); got != 40 {
		t.Errorf("expected 40, got %d", got)
	}
}

func TestNewPageMeta(t *testing.T) {
	meta := NewPageMeta(2, 10, 10, 45)
	if meta.Current != 2 || meta.Total != 5 || meta.Count != 10 || meta.TotalItems != 45 {
		t.Errorf("unexpected meta: %+v", meta)
	}

	empty := NewPageMeta(1, 10, 0, 0)
	if empty.Total != 0 {
		t.Errorf("empty result should have 0 pages, got %d", empty.Total)
	}
}
