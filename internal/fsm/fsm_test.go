package fsm

import (
	"testing"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
)

func TestCanTransition(t *testing.T) {
	if !CanTransition(models.StatusWait, models.StatusPaid) {
		t.Fatal("expected wait -> paid to be allowed")
	}
	if !CanTransition(models.StatusPaid, models.StatusProcess) {
		t.Fatal("expected paid -> process to be allowed")
	}
	if !CanTransition(models.StatusProcess, models.StatusOrderOK) {
		t.Fatal("expected process -> order_ok to be allowed")
	}
	if !CanTransition(models.StatusProcess, models.StatusOrderError) {
		t.Fatal("expected process -> order_error to be allowed")
	}
	if !CanTransition(models.StatusWait, models.StatusCanceled) {
		t.Fatal("expected wait -> canceled to be allowed")
	}
	if !CanTransition(models.StatusPaid, models.StatusRefunded) {
		t.Fatal("expected paid -> refunded to be allowed")
	}
	if CanTransition(models.StatusOrderOK, models.StatusPaid) {
		t.Fatal("unexpected transition out of order_ok")
	}
	if CanTransition(models.StatusCanceled, models.StatusWait) {
		t.Fatal("unexpected transition out of canceled")
	}
	if CanTransition(models.StatusRefunded, models.StatusPaid) {
		t.Fatal("unexpected transition out of refunded")
	}
}

func TestCanTransitionSameStatus(t *testing.T) {
	for _, s := range []string{
		models.StatusWait, models.StatusProcess, models.StatusPaid,
		models.StatusOrderOK, models.StatusOrderError,
		models.StatusCanceled, models.StatusRefunded, models.StatusError,
	} {
		if !CanTransition(s, s) {
			t.Fatalf("expected %s -> %s to be allowed", s, s)
		}
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid(models.StatusWait) {
		t.Fatal("expected wait to be valid")
	}
	if IsValid("shipped") {
		t.Fatal("unexpected valid status")
	}
}
