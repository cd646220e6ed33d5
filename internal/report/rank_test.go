package report

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/Bahjat/har-report/backend/internal/model"
)

func TestTopN(t *testing.T) {
	list := []int{9, 7, 5, 3, 1}

	tests := []struct {
		name string
		n    int
		want []int
	}{
		{name: "negative", n: -1, want: []int{}},
		{name: "zero", n: 0, want: []int{}},
		{name: "prefix", n: 2, want: []int{9, 7}},
		{name: "exact length", n: 5, want: []int{9, 7, 5, 3, 1}},
		{name: "longer than list", n: 10, want: []int{9, 7, 5, 3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopN(list, tt.n)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TopN(%v, %d) = %v, want %v", list, tt.n, got, tt.want)
			}
		})
	}
}

func TestTopN_NilList(t *testing.T) {
	got := TopN[string](nil, 5)
	if got == nil || len(got) != 0 {
		t.Errorf("TopN(nil, 5) = %#v, want empty non-nil slice", got)
	}
}

func TestTopN_DoesNotReorder(t *testing.T) {
	list := []int{1, 5, 3}
	got := TopN(list, 3)
	if !reflect.DeepEqual(got, []int{1, 5, 3}) {
		t.Errorf("TopN reordered its input: %v", got)
	}
}

func TestRankDistribution_StableTies(t *testing.T) {
	got := RankDistribution(codes("200", 50, "404", 50, "500", 10))
	want := []model.CodeCount{{Code: "200", Count: 50}, {Code: "404", Count: 50}, {Code: "500", Count: 10}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RankDistribution = %v, want %v", got, want)
	}

	got = RankDistribution(codes("404", 50, "500", 10, "200", 50))
	want = []model.CodeCount{{Code: "404", Count: 50}, {Code: "200", Count: 50}, {Code: "500", Count: 10}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RankDistribution = %v, want %v", got, want)
	}
}

func TestRankDistribution_KeepsDecodedOrder(t *testing.T) {
	body := `{"summary": {}, "path_pattern_analysis": {}, "response_codes": {"500": 10, "404": 50, "304": 2, "200": 50}}`

	var raw model.RawAnalysisResult
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}

	got := RankDistribution(raw.ResponseCodes)
	want := []model.CodeCount{{Code: "404", Count: 50}, {Code: "200", Count: 50}, {Code: "500", Count: 10}, {Code: "304", Count: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RankDistribution = %v, want %v", got, want)
	}
}

func TestRankDistribution_Empty(t *testing.T) {
	if got := RankDistribution(nil); got == nil || len(got) != 0 {
		t.Errorf("RankDistribution(nil) = %#v, want empty non-nil slice", got)
	}
	if got := RankDistribution(codes()); len(got) != 0 {
		t.Errorf("RankDistribution(empty) = %v, want empty", got)
	}
}
