package events_test

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prakashraj/godown/app/events"
	"github.com/prakashraj/godown/app/models"
)

func TestPublishReachesSubscribers(t *testing.T) {
	p := events.NewPublisher(nil)
	ch, cancel := p.Subscribe()
	defer cancel()

	product := models.Product{ID: primitive.NewObjectID(), Name: "hammer"}
	p.Publish(events.Created(product))

	select {
	case e := <-ch:
		if e.Kind != events.KindCreated {
			t.Errorf("kind = %q, want %q", e.Kind, events.KindCreated)
		}
		if e.ID != product.ID.Hex() {
			t.Errorf("id = %q, want %q", e.ID, product.ID.Hex())
		}
		if e.At.IsZero() {
			t.Error("event timestamp not set")
		}
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestPublishAfterCancelDropsEvent(t *testing.T) {
	p := events.NewPublisher(nil)
	ch, cancel := p.Subscribe()
	cancel()

	p.Publish(events.Deleted("abc"))

	select {
	case e := <-ch:
		t.Fatalf("unexpected event after cancel: %+v", e)
	default:
	}
}

func TestNilPublisherIsSafe(t *testing.T) {
	var p *events.Publisher
	p.Publish(events.Deleted("abc")) // must not panic
}

func TestSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	p := events.NewPublisher(nil)
	_, cancel := p.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		// More events than the subscriber buffer holds.
		for i := 0; i < 100; i++ {
			p.Publish(events.Deleted("x"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}
