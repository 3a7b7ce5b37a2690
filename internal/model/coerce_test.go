package model

import "testing"

func TestFloat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   any
		want float64
	}{
		{nil, 0},
		{3.5, 3.5},
		{float32(2), 2},
		{7, 7},
		{int64(9), 9},
		{true, 1},
		{false, 0},
		{"2.5", 2.5},
		{" 10 ", 10},
		{"bogus", 0},
		{"", 0},
		{[]any{1.0}, 0},
	}
	for _, c := range cases {
		if got := Float(c.in); got != c.want {
			t.Fatalf("Float(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestInt(t *testing.T) {
	t.Parallel()

	if got := Int(3.9); got != 3 {
		t.Fatalf("Int(3.9) = %d, want 3", got)
	}
	if got := Int("12"); got != 12 {
		t.Fatalf("Int(\"12\") = %d, want 12", got)
	}
	if got := Int(nil); got != 0 {
		t.Fatalf("Int(nil) = %d, want 0", got)
	}
}

func TestBool(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   any
		want bool
	}{
		{true, true},
		{false, false},
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"false", false},
		{"no", false},
		{1.0, true},
		{0.0, false},
		{nil, false},
	}
	for _, c := range cases {
		if got := Bool(c.in); got != c.want {
			t.Fatalf("Bool(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   any
		want string
	}{
		{nil, "NA"},
		{"", "NA"},
		{"abc", "abc"},
		{42.0, "42"},
		{3.25, "3.25"},
		{true, "NA"},
	}
	for _, c := range cases {
		if got := Text(c.in); got != c.want {
			t.Fatalf("Text(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
