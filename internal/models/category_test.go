package models

import "testing"

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"IT", CategoryIT, false},
		{" marketing ", CategoryMarketing, false},
		{"ceo", CategoryCEO, false},
		{"Sales", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCategory(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCategory(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCategoryRank(t *testing.T) {
	if CategoryCEO.Rank() != 0 {
		t.Errorf("CEO rank = %d, want 0", CategoryCEO.Rank())
	}
	if CategoryAccountant.Rank() != len(Categories)-1 {
		t.Errorf("Accountant rank = %d, want %d", CategoryAccountant.Rank(), len(Categories)-1)
	}
	if Category("Sales").Valid() {
		t.Error("unknown category reported as valid")
	}
}

func TestParseReminderType(t *testing.T) {
	for _, s := range []string{"first", "second", "final"} {
		if _, err := ParseReminderType(s); err != nil {
			t.Errorf("ParseReminderType(%q) unexpected error: %v", s, err)
		}
	}
	if _, err := ParseReminderType("urgent"); err == nil {
		t.Error("ParseReminderType(\"urgent\") should fail")
	}
}
