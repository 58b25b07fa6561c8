package render

import (
	"math"
	"testing"
)

func TestBoxConstraintsConstrain(t *testing.T) {
	tests := map[string]struct {
		constraints BoxConstraints
		in          Size
		want        Size
	}{
		"within range passes through": {
			constraints: BoxConstraints{MinWidth: 10, MaxWidth: 100, MinHeight: 10, MaxHeight: 100},
			in:          Size{Width: 50, Height: 50},
			want:        Size{Width: 50, Height: 50},
		},
		"clamped up to minimums": {
			constraints: BoxConstraints{MinWidth: 10, MaxWidth: 100, MinHeight: 20, MaxHeight: 100},
			in:          Size{Width: 5, Height: 5},
			want:        Size{Width: 10, Height: 20},
		},
		"clamped down to maximums": {
			constraints: BoxConstraints{MaxWidth: 100, MaxHeight: 80},
			in:          Size{Width: 500, Height: 500},
			want:        Size{Width: 100, Height: 80},
		},
		"unbounded axis keeps requested extent": {
			constraints: BoxConstraints{MaxWidth: 100, MaxHeight: Unbounded},
			in:          Size{Width: 500, Height: 500},
			want:        Size{Width: 100, Height: 500},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.constraints.Constrain(tt.in); got != tt.want {
				t.Errorf("Constrain(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBoxConstraintsTightLoose(t *testing.T) {
	tight := TightConstraints(Size{Width: 40, Height: 30})
	if !tight.IsTight() {
		t.Fatalf("TightConstraints should be tight")
	}
	if tight.Smallest() != tight.Biggest() {
		t.Fatalf("tight constraints admit more than one size")
	}

	loose := tight.Loosen()
	if loose.IsTight() {
		t.Fatalf("Loosen left constraints tight")
	}
	if loose.MinWidth != 0 || loose.MinHeight != 0 {
		t.Fatalf("Loosen kept nonzero minimums: %v", loose)
	}
	if loose.MaxWidth != 40 || loose.MaxHeight != 30 {
		t.Fatalf("Loosen changed maximums: %v", loose)
	}
}

func TestBoxConstraintsEnforce(t *testing.T) {
	c := BoxConstraints{MinWidth: 10, MaxWidth: 300, MinHeight: 10, MaxHeight: 300}
	outer := BoxConstraints{MinWidth: 50, MaxWidth: 100, MinHeight: 50, MaxHeight: 100}
	got := c.Enforce(outer)
	if !got.IsNormalized() {
		t.Fatalf("Enforce produced non-normalized constraints: %v", got)
	}
	if got.MinWidth != 50 || got.MaxWidth != 100 || got.MinHeight != 50 || got.MaxHeight != 100 {
		t.Errorf("Enforce = %v, want bounds clamped into [50, 100]", got)
	}
}

func TestBoxConstraintsDeflate(t *testing.T) {
	c := BoxConstraints{MinWidth: 10, MaxWidth: 100, MinHeight: 10, MaxHeight: 100}
	got := c.Deflate(InsetsAll(20))
	if got.MaxWidth != 60 || got.MaxHeight != 60 {
		t.Errorf("Deflate maximums = (%v, %v), want (60, 60)", got.MaxWidth, got.MaxHeight)
	}
	if got.MinWidth != 0 || got.MinHeight != 0 {
		t.Errorf("Deflate minimums = (%v, %v), want floored at 0", got.MinWidth, got.MinHeight)
	}

	huge := c.Deflate(InsetsAll(500))
	if huge.MaxWidth != 0 || huge.MaxHeight != 0 || !huge.IsNormalized() {
		t.Errorf("oversized Deflate = %v, want everything floored at 0", huge)
	}
}

func TestConstrainSizeAndAttemptToPreserveAspectRatio(t *testing.T) {
	tests := map[string]struct {
		constraints BoxConstraints
		in          Size
		want        Size
	}{
		"wide child scaled down keeping ratio": {
			constraints: BoxConstraints{MaxWidth: 100, MaxHeight: 100},
			in:          Size{Width: 400, Height: 100},
			want:        Size{Width: 100, Height: 25},
		},
		"tall child scaled down keeping ratio": {
			constraints: BoxConstraints{MaxWidth: 100, MaxHeight: 100},
			in:          Size{Width: 100, Height: 400},
			want:        Size{Width: 25, Height: 100},
		},
		"tight constraints win outright": {
			constraints: TightConstraints(Size{Width: 30, Height: 40}),
			in:          Size{Width: 400, Height: 100},
			want:        Size{Width: 30, Height: 40},
		},
		"fits unchanged": {
			constraints: BoxConstraints{MaxWidth: 100, MaxHeight: 100},
			in:          Size{Width: 80, Height: 20},
			want:        Size{Width: 80, Height: 20},
		},
		"minimum forces width up and height follows": {
			constraints: BoxConstraints{MinWidth: 200, MaxWidth: 400, MaxHeight: 400},
			in:          Size{Width: 100, Height: 50},
			want:        Size{Width: 200, Height: 100},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := tt.constraints.ConstrainSizeAndAttemptToPreserveAspectRatio(tt.in)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxConstraintsIsSatisfiedBy(t *testing.T) {
	c := BoxConstraints{MinWidth: 10, MaxWidth: 100, MinHeight: 10, MaxHeight: 100}
	if !c.IsSatisfiedBy(Size{Width: 10, Height: 100}) {
		t.Errorf("boundary size should satisfy")
	}
	if c.IsSatisfiedBy(Size{Width: 9, Height: 50}) {
		t.Errorf("undersized width should not satisfy")
	}
	if c.IsSatisfiedBy(Size{Width: 50, Height: 101}) {
		t.Errorf("oversized height should not satisfy")
	}
}

func TestBoxConstraintsNormalized(t *testing.T) {
	if (BoxConstraints{MinWidth: 50, MaxWidth: 10, MaxHeight: 10}).IsNormalized() {
		t.Errorf("min above max should not be normalized")
	}
	if (BoxConstraints{MinWidth: -1, MaxWidth: 10, MaxHeight: 10}).IsNormalized() {
		t.Errorf("negative minimum should not be normalized")
	}
	if !(BoxConstraints{MaxWidth: Unbounded, MaxHeight: Unbounded}).IsNormalized() {
		t.Errorf("unbounded maximums are normalized")
	}
}

func TestExpandConstraints(t *testing.T) {
	c := ExpandConstraints()
	if !math.IsInf(c.MinWidth, 1) || !math.IsInf(c.MinHeight, 1) {
		t.Fatalf("ExpandConstraints = %v, want infinite minimums", c)
	}
	if !c.IsTight() {
		t.Fatalf("ExpandConstraints should be tight")
	}
}
