package pricing

import (
	"errors"
	"testing"
)

func TestNights(t *testing.T) {
	cases := []struct {
		name    string
		in, out string
		want    int
		wantErr bool
	}{
		{"three nights", "2024-06-01", "2024-06-04", 3, false},
		{"same day", "2024-06-01", "2024-06-01", 0, false},
		{"month boundary", "2024-01-30", "2024-02-02", 3, false},
		{"leap day", "2024-02-28", "2024-03-01", 2, false},
		{"missing check-in", "", "2024-06-04", 0, false},
		{"missing check-out", "2024-06-01", "", 0, false},
		{"reversed dates are absolute", "2024-06-04", "2024-06-01", 3, false},
		{"partial day rounds up", "2024-06-01T00:00:00Z", "2024-06-02T06:00:00Z", 2, false},
		{"stay longer than 292 years", "2024-06-01", "2400-06-01", 137331, false},
		{"garbage", "tomorrow", "2024-06-01", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Nights(tc.in, tc.out)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidDate) {
					t.Fatalf("want ErrInvalidDate, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Nights(%q, %q) = %d, want %d", tc.in, tc.out, got, tc.want)
			}
		})
	}
}

func TestNightsMatchesCalendarDays(t *testing.T) {
	start, _ := ParseDate("2024-01-01")
	for days := 1; days <= 400; days++ {
		out := start.AddDate(0, 0, days).Format(DateLayout)
		got, err := Nights("2024-01-01", out)
		if err != nil {
			t.Fatal(err)
		}
		if got != days {
			t.Fatalf("2024-01-01 -> %s: got %d nights, want %d", out, got, days)
		}
		q, err := StayQuote(100, "2024-01-01", out)
		if err != nil {
			t.Fatal(err)
		}
		if q.Total != float64(days)*100 {
			t.Fatalf("total for %d nights = %v", days, q.Total)
		}
	}
}

func TestStayQuote(t *testing.T) {
	q, err := StayQuote(100, "2024-06-01", "2024-06-04")
	if err != nil {
		t.Fatal(err)
	}
	if q.Nights != 3 || q.Total != 300 || q.Display != "€300.00" || !q.ShowSummary {
		t.Fatalf("unexpected quote: %+v", q)
	}

	q, err = StayQuote(100, "2024-06-01", "")
	if err != nil {
		t.Fatal(err)
	}
	if q.ShowSummary || q.Total != 0 || q.Nights != 0 {
		t.Fatalf("summary should be suppressed: %+v", q)
	}
}

func TestPeopleQuote(t *testing.T) {
	q := PeopleQuote(50, 4)
	if q.Total != 200 || q.Display != "€200.00" {
		t.Fatalf("unexpected quote: %+v", q)
	}
	if got := PeopleQuote(0.1, 3).Total; got != 0.3 {
		t.Fatalf("0.1 x 3 = %v, want 0.3", got)
	}
	if q := PeopleQuote(50, 0); q.ShowSummary || q.Total != 0 {
		t.Fatalf("zero people should not show a summary: %+v", q)
	}
}

func TestFormat(t *testing.T) {
	if got := Format(1234.5); got != "€1234.50" {
		t.Fatalf("Format = %q", got)
	}
}
