package campaignstore_test

import (
	"errors"
	"testing"

	campaignstore "github.com/kindbridge/kindbridge/internal/app/store/campaigns"
	"github.com/kindbridge/kindbridge/internal/domain/models"
	"github.com/kindbridge/kindbridge/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{models.CampaignPending, models.CampaignActive, true},
		{models.CampaignPending, models.CampaignRejected, true},
		{models.CampaignActive, models.CampaignSuspended, true},
		{models.CampaignActive, models.CampaignCompleted, true},
		{models.CampaignSuspended, models.CampaignActive, true},

		{models.CampaignPending, models.CampaignCompleted, false},
		{models.CampaignPending, models.CampaignSuspended, false},
		{models.CampaignActive, models.CampaignRejected, false},
		{models.CampaignRejected, models.CampaignActive, false},
		{models.CampaignCompleted, models.CampaignActive, false},
		{models.CampaignSuspended, models.CampaignCompleted, false},
		{models.CampaignActive, models.CampaignActive, false},
		{"bogus", models.CampaignActive, false},
	}

	for _, tt := range tests {
		if got := campaignstore.CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCreate_StartsPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := campaignstore.New(db)

	created, err := store.Create(ctx, models.Campaign{
		NGOID:        primitive.NewObjectID(),
		Title:        "  Clean   Water ",
		Description:  "<script>alert(1)</script>Dig wells",
		GoalAmount:   500_000,
		RaisedAmount: 999, // must be ignored
		Status:       models.CampaignActive,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.Status != models.CampaignPending {
		t.Errorf("status: got %q, want pending", created.Status)
	}
	if created.RaisedAmount != 0 {
		t.Errorf("raised: got %d, want 0", created.RaisedAmount)
	}
	if created.Title != "Clean Water" {
		t.Errorf("title: got %q, want %q", created.Title, "Clean Water")
	}
	if created.Description != "Dig wells" {
		t.Errorf("description not sanitized: %q", created.Description)
	}
	if created.Currency != "USD" {
		t.Errorf("currency: got %q, want USD", created.Currency)
	}
}

func TestCreate_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := campaignstore.New(db)

	if _, err := store.Create(ctx, models.Campaign{NGOID: primitive.NewObjectID(), GoalAmount: 100}); err == nil {
		t.Error("expected error for missing title")
	}
	if _, err := store.Create(ctx, models.Campaign{NGOID: primitive.NewObjectID(), Title: "X", GoalAmount: 0}); err == nil {
		t.Error("expected error for non-positive goal")
	}
}

func TestTransition_PinsStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := campaignstore.New(db)
	fx := testutil.NewFixtures(t, db)

	ngo := fx.CreateNGO(ctx, "Helpers", primitive.NewObjectID())
	campaign := fx.CreateCampaign(ctx, "Drive", ngo.ID, models.CampaignPending)

	if err := store.Transition(ctx, campaign.ID, models.CampaignPending, models.CampaignActive); err != nil {
		t.Fatalf("pending -> active: %v", err)
	}

	// Second attempt races a stale expectation; the pin rejects it.
	err := store.Transition(ctx, campaign.ID, models.CampaignPending, models.CampaignActive)
	if !errors.Is(err, campaignstore.ErrInvalidTransition) {
		t.Errorf("stale transition: got %v, want ErrInvalidTransition", err)
	}

	// Illegal step is rejected before touching the database.
	err = store.Transition(ctx, campaign.ID, models.CampaignActive, models.CampaignRejected)
	if !errors.Is(err, campaignstore.ErrInvalidTransition) {
		t.Errorf("illegal transition: got %v, want ErrInvalidTransition", err)
	}
}

func TestAddRaised(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := campaignstore.New(db)
	fx := testutil.NewFixtures(t, db)

	ngo := fx.CreateNGO(ctx, "Helpers", primitive.NewObjectID())
	campaign := fx.CreateCampaign(ctx, "Drive", ngo.ID, models.CampaignActive)

	got, err := store.AddRaised(ctx, campaign.ID, 2_500)
	if err != nil {
		t.Fatalf("AddRaised: %v", err)
	}
	if got.RaisedAmount != 2_500 {
		t.Errorf("raised after credit: got %d, want 2500", got.RaisedAmount)
	}

	got, err = store.AddRaised(ctx, campaign.ID, -1_000)
	if err != nil {
		t.Fatalf("AddRaised refund: %v", err)
	}
	if got.RaisedAmount != 1_500 {
		t.Errorf("raised after refund: got %d, want 1500", got.RaisedAmount)
	}
}

func TestList_FiltersByStatusAndNGO(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := campaignstore.New(db)
	fx := testutil.NewFixtures(t, db)

	ngoA := fx.CreateNGO(ctx, "Alpha", primitive.NewObjectID())
	ngoB := fx.CreateNGO(ctx, "Beta", primitive.NewObjectID())
	fx.CreateCampaign(ctx, "Active A", ngoA.ID, models.CampaignActive)
	fx.CreateCampaign(ctx, "Pending A", ngoA.ID, models.CampaignPending)
	fx.CreateCampaign(ctx, "Active B", ngoB.ID, models.CampaignActive)

	active, total, err := store.List(ctx, campaignstore.ListFilter{Status: models.CampaignActive}, 1, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(active) != 2 {
		t.Errorf("active campaigns: got %d (total %d), want 2", len(active), total)
	}

	mine, total, err := store.List(ctx, campaignstore.ListFilter{NGOID: &ngoA.ID}, 1, 10)
	if err != nil {
		t.Fatalf("List by NGO: %v", err)
	}
	if total != 2 || len(mine) != 2 {
		t.Errorf("ngo A campaigns: got %d (total %d), want 2", len(mine), total)
	}
	for _, c := range mine {
		if c.NGOID != ngoA.ID {
			t.Errorf("campaign %q belongs to wrong NGO", c.Title)
		}
	}
}
