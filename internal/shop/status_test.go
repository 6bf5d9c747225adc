package shop

import "testing"

func TestParseStatusIsCaseInsensitive(t *testing.T) {
	cases := map[string]Status{
		"pending":    StatusPending,
		"Processed":  StatusProcessed,
		"SHIPPED":    StatusShipped,
		" delivered": StatusDelivered,
		"cancelled":  StatusCancelled,
		"refunded":   StatusUnknown,
		"":           StatusUnknown,
	}
	for input, want := range cases {
		if got := ParseStatus(input); got != want {
			t.Fatalf("ParseStatus(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestStatusClass(t *testing.T) {
	if got := Status("Shipped").Class(); got != "shipped" {
		t.Fatalf("expected class shipped, got %q", got)
	}
	if got := Status("bogus").Class(); got != "" {
		t.Fatalf("expected empty class for unknown status, got %q", got)
	}
}

func TestTimelineForShipped(t *testing.T) {
	tl := TimelineFor(StatusShipped)
	if !tl.Placed || !tl.Processed || !tl.Shipped {
		t.Fatalf("shipped order should complete placed, processed and shipped: %+v", tl)
	}
	if tl.Delivered {
		t.Fatalf("shipped order must not complete delivered: %+v", tl)
	}
}

func TestTimelineForCancelledLeavesEveryStepIncomplete(t *testing.T) {
	tl := TimelineFor(StatusCancelled)
	if tl.Placed || tl.Processed || tl.Shipped || tl.Delivered {
		t.Fatalf("cancelled order should have no completed steps: %+v", tl)
	}
}

func TestTimelineTable(t *testing.T) {
	cases := []struct {
		status Status
		want   Timeline
	}{
		{StatusPending, Timeline{Placed: true}},
		{StatusProcessed, Timeline{Placed: true, Processed: true}},
		{StatusShipped, Timeline{Placed: true, Processed: true, Shipped: true}},
		{StatusDelivered, Timeline{Placed: true, Processed: true, Shipped: true, Delivered: true}},
		{StatusCancelled, Timeline{}},
	}
	for _, tc := range cases {
		if got := TimelineFor(tc.status); got != tc.want {
			t.Fatalf("TimelineFor(%s) = %+v, want %+v", tc.status, got, tc.want)
		}
	}
}
