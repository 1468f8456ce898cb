package ingest

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"선순위 소액보증금", "선순위소액보증금"},
		{"선순위\n임차보증금", "선순위임차보증금"},
		{"감정평가액\r\n_합계", "감정평가액_합계"},
		{"\t계좌번호 ", "계좌번호"},
		{"", ""},
		{"   ", ""},
		{"\r\n", ""},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	inputs := []string{"Sheet A(차주일반정보)", " a b\nc ", "합 계", ""}
	for _, in := range inputs {
		once := NormalizeName(in)
		if twice := NormalizeName(once); twice != once {
			t.Errorf("NormalizeName not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
