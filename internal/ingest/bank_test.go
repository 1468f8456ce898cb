package ingest

import "testing"

func TestDetectBank(t *testing.T) {
	tests := []struct {
		name   string
		sheets []string
		want   BankType
	}{
		{
			"kb full disk",
			[]string{"Sheet A(차주일반정보)", "Sheet B(채권일반정보)", "Sheet C-1(물건정보)", "Sheet C-2(등기부등본정보)", "Sheet D(신용보증서정보)"},
			BankKB,
		},
		{
			"ibk disk keyed by sheet a-1",
			[]string{"Sheet A", "Sheet A-1", "Sheet B", "Sheet C-1", "Sheet D"},
			BankIBK,
		},
		{
			"nh disk keyed by sheet f",
			[]string{"Sheet A", "Sheet B", "Sheet B-1", "Sheet F"},
			BankNH,
		},
		{
			"shb numbered korean sheets",
			[]string{"1.차주일반", "2.매각대상채권", "3.담보물건", "5.신용보증서"},
			BankSHB,
		},
		{
			"no signature",
			[]string{"Summary", "Data"},
			BankUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, conf := DetectBank(tt.sheets)
			if got != tt.want {
				t.Errorf("bank = %v (conf %.2f), want %v", got, conf, tt.want)
			}
			if tt.want == BankUnknown && conf != 0 {
				t.Errorf("conf = %.2f, want 0 for unknown", conf)
			}
			if tt.want != BankUnknown && conf <= 0 {
				t.Errorf("conf = %.2f, want > 0", conf)
			}
		})
	}
}

func TestDetectBankTieIsUnknown(t *testing.T) {
	// A bare "Sheet A" scores 3 for IBK and 3 for NH; without a margin the
	// call is ambiguous and must not pick a side.
	got, conf := DetectBank([]string{"Sheet A"})
	if got != BankUnknown || conf != 0 {
		t.Errorf("got %v (conf %.2f), want Unknown with zero confidence", got, conf)
	}
}

func TestDetectBankEmpty(t *testing.T) {
	if got, conf := DetectBank(nil); got != BankUnknown || conf != 0 {
		t.Errorf("got %v (conf %.2f)", got, conf)
	}
}

func TestParseBankType(t *testing.T) {
	for _, name := range []string{"KB", "IBK", "NH", "SHB"} {
		if got := ParseBankType(name); got.String() != name {
			t.Errorf("round trip %q -> %v", name, got)
		}
	}
	if got := ParseBankType("woori"); got != BankUnknown {
		t.Errorf("unknown name parsed as %v", got)
	}
}
