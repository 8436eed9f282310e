package status

import (
	"errors"
	"testing"
	"time"

	"github.com/Shashikant-75555/swaadserve-demo/internal/models"
)

func newOrder(s models.OrderStatus) *models.Order {
	return &models.Order{Number: "ORD_20260828_001", Status: s}
}

func TestApply_HappyPath(t *testing.T) {
	o := newOrder(models.StatusPending)
	base := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	steps := []struct {
		target models.OrderStatus
		role   Role
	}{
		{models.StatusConfirmed, RoleRestaurant},
		{models.StatusPreparing, RoleRestaurant},
		{models.StatusReady, RoleRestaurant},
		{models.StatusOutForDelivery, RoleRestaurant},
		{models.StatusDelivered, RoleDeliveryPartner},
	}

	var prev time.Time
	for i, step := range steps {
		now := base.Add(time.Duration(i+1) * time.Minute)
		if err := Apply(o, step.target, step.role, now); err != nil {
			t.Fatalf("step %d (%s): unexpected error: %v", i, step.target, err)
		}
		if o.Status != step.target {
			t.Fatalf("step %d: status = %s, want %s", i, o.Status, step.target)
		}

		ts := ReachedAt(o, step.target)
		if ts == nil {
			t.Fatalf("step %d: no timestamp recorded for %s", i, step.target)
		}
		if !ts.After(prev) {
			t.Fatalf("step %d: timestamp %v not after previous %v", i, ts, prev)
		}
		prev = *ts
	}

	if !IsTerminal(o.Status) {
		t.Errorf("delivered should be terminal")
	}
}

func TestApply_FromPending(t *testing.T) {
	all := []models.OrderStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusPreparing,
		models.StatusReady, models.StatusOutForDelivery, models.StatusDelivered,
		models.StatusCancelled,
	}

	for _, target := range all {
		o := newOrder(models.StatusPending)
		err := Apply(o, target, RoleRestaurant, time.Now().UTC())

		allowed := target == models.StatusConfirmed || target == models.StatusCancelled
		if allowed && err != nil {
			t.Errorf("pending -> %s: unexpected error: %v", target, err)
		}
		if !allowed {
			var invalid *InvalidTransitionError
			if !errors.As(err, &invalid) {
				t.Errorf("pending -> %s: error = %v, want InvalidTransitionError", target, err)
			} else if invalid.From != models.StatusPending || invalid.To != target {
				t.Errorf("pending -> %s: error names %s -> %s", target, invalid.From, invalid.To)
			}
			if o.Status != models.StatusPending {
				t.Errorf("pending -> %s: order mutated on rejection", target)
			}
		}
	}
}

func TestApply_TerminalStatesRejectEverything(t *testing.T) {
	targets := []models.OrderStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusPreparing,
		models.StatusReady, models.StatusOutForDelivery, models.StatusDelivered,
		models.StatusCancelled,
	}

	for _, from := range []models.OrderStatus{models.StatusDelivered, models.StatusCancelled} {
		for _, target := range targets {
			o := newOrder(from)
			err := Apply(o, target, RoleRestaurant, time.Now().UTC())
			var invalid *InvalidTransitionError
			if !errors.As(err, &invalid) {
				t.Errorf("%s -> %s: error = %v, want InvalidTransitionError", from, target, err)
			}
		}
	}
}

func TestApply_SkippingAStepFails(t *testing.T) {
	o := newOrder(models.StatusPreparing)
	err := Apply(o, models.StatusOutForDelivery, RoleRestaurant, time.Now().UTC())

	var invalid *InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want InvalidTransitionError", err)
	}
	if invalid.From != models.StatusPreparing || invalid.To != models.StatusOutForDelivery {
		t.Errorf("error names %s -> %s, want preparing -> out_for_delivery", invalid.From, invalid.To)
	}
}

func TestApply_NoRegression(t *testing.T) {
	o := newOrder(models.StatusReady)
	for _, target := range []models.OrderStatus{models.StatusPending, models.StatusConfirmed, models.StatusPreparing} {
		err := Apply(o, target, RoleRestaurant, time.Now().UTC())
		var invalid *InvalidTransitionError
		if !errors.As(err, &invalid) {
			t.Errorf("ready -> %s: error = %v, want InvalidTransitionError", target, err)
		}
	}
}

func TestApply_RoleGating(t *testing.T) {
	tests := []struct {
		name    string
		from    models.OrderStatus
		target  models.OrderStatus
		role    Role
		wantErr bool
	}{
		{"restaurant confirms", models.StatusPending, models.StatusConfirmed, RoleRestaurant, false},
		{"delivery partner cannot confirm", models.StatusPending, models.StatusConfirmed, RoleDeliveryPartner, true},
		{"delivery partner completes delivery", models.StatusOutForDelivery, models.StatusDelivered, RoleDeliveryPartner, false},
		{"restaurant cannot mark delivered", models.StatusOutForDelivery, models.StatusDelivered, RoleRestaurant, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOrder(tt.from)
			err := Apply(o, tt.target, tt.role, time.Now().UTC())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Apply() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var roleErr *RoleError
				if !errors.As(err, &roleErr) {
					t.Errorf("error = %v, want RoleError", err)
				}
				if o.Status != tt.from {
					t.Errorf("order mutated on rejected role")
				}
			}
		})
	}
}

func TestNextStatuses(t *testing.T) {
	tests := []struct {
		from models.OrderStatus
		want []models.OrderStatus
	}{
		{models.StatusPending, []models.OrderStatus{models.StatusConfirmed, models.StatusCancelled}},
		{models.StatusConfirmed, []models.OrderStatus{models.StatusPreparing}},
		{models.StatusPreparing, []models.OrderStatus{models.StatusReady}},
		{models.StatusReady, []models.OrderStatus{models.StatusOutForDelivery}},
		{models.StatusOutForDelivery, []models.OrderStatus{models.StatusDelivered}},
		{models.StatusDelivered, nil},
		{models.StatusCancelled, nil},
	}

	for _, tt := range tests {
		got := NextStatuses(tt.from)
		if len(got) != len(tt.want) {
			t.Errorf("NextStatuses(%s) = %v, want %v", tt.from, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("NextStatuses(%s)[%d] = %s, want %s", tt.from, i, got[i], tt.want[i])
			}
		}
	}
}

func TestParseStatus(t *testing.T) {
	if _, err := ParseStatus("out_for_delivery"); err != nil {
		t.Errorf("ParseStatus(out_for_delivery) error: %v", err)
	}
	if _, err := ParseStatus("cooking"); err == nil {
		t.Errorf("ParseStatus(cooking) should fail")
	}
}

func TestParseRole(t *testing.T) {
	if _, err := ParseRole("restaurant"); err != nil {
		t.Errorf("ParseRole(restaurant) error: %v", err)
	}
	if _, err := ParseRole("guest"); err == nil {
		t.Errorf("ParseRole(guest) should fail")
	}
}
