package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"

	"propaudit/internal/ledger/metrics"
	"propaudit/internal/ledger/models"
	ledgerStore "propaudit/internal/ledger/store"
	id "propaudit/pkg/domain"
	dErrors "propaudit/pkg/domain-errors"
	"propaudit/pkg/platform/audit"
	"propaudit/pkg/platform/audit/publisher"
	"propaudit/pkg/platform/audit/store/memory"
	"propaudit/pkg/requestcontext"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// =============================================================================
// Ledger Service Test Suite
// =============================================================================
// Runs the service against the in-memory store so the debit invariants are
// exercised end to end, including under concurrency.

type LedgerServiceSuite struct {
	suite.Suite
	store      *ledgerStore.InMemoryStore
	auditStore *memory.InMemoryStore
	service    *Service
}

func TestLedgerServiceSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceSuite))
}

func (s *LedgerServiceSuite) SetupTest() {
	s.store = ledgerStore.NewInMemory()
	s.auditStore = memory.NewInMemoryStore()

	var err error
	s.service, err = New(s.store,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithAuditPublisher(publisher.NewPublisher(s.auditStore)),
		WithMetrics(metrics.New(prometheus.NewRegistry())),
		WithRetry(3, time.Millisecond),
	)
	s.Require().NoError(err)
}

func sampleDetails() models.PropertyDetails {
	return models.PropertyDetails{
		PropertyName: "Lakeview Residency",
		Address:      "221 Outer Ring Road",
		City:         "Bengaluru",
		State:        "Karnataka",
		Pincode:      "560103",
		PropertyType: models.PropertyApartment,
	}
}

func (s *LedgerServiceSuite) seedCredits(userID id.UserID, total, used, per int) {
	now := time.Now()
	_, _, err := s.store.CreateCredits(context.Background(), &models.UserCredits{
		UserID:             userID,
		TotalCredits:       total,
		UsedCredits:        used,
		CreditsPerProperty: per,
		CreatedAt:          now,
		UpdatedAt:          now,
	})
	s.Require().NoError(err)
}

func (s *LedgerServiceSuite) actions(userID id.UserID) []string {
	events, err := s.auditStore.ListByUser(context.Background(), userID)
	s.Require().NoError(err)
	actions := make([]string, 0, len(events))
	for _, e := range events {
		actions = append(actions, e.Action)
	}
	return actions
}

// =============================================================================
// Constructor Tests (Invariant Enforcement)
// =============================================================================

func (s *LedgerServiceSuite) TestNew() {
	s.Run("nil store returns error", func() {
		_, err := New(nil)
		s.Error(err)
		s.Contains(err.Error(), "ledger store is required")
	})

	s.Run("non-positive credits per property rejected", func() {
		_, err := New(s.store, WithDefaults(models.CreditDefaults{StartingCredits: 5, CreditsPerProperty: 0}))
		s.Error(err)
	})

	s.Run("negative starting credits rejected", func() {
		_, err := New(s.store, WithDefaults(models.CreditDefaults{StartingCredits: -1, CreditsPerProperty: 1}))
		s.Error(err)
	})
}

// =============================================================================
// GetOrCreateCredits Tests
// =============================================================================

func (s *LedgerServiceSuite) TestGetOrCreateCredits() {
	ctx := context.Background()

	s.Run("first access provisions defaults once", func() {
		userID := id.UserID(uuid.New())

		credits, err := s.service.GetOrCreateCredits(ctx, userID)
		s.Require().NoError(err)
		s.Equal(DefaultStartingCredits, credits.TotalCredits)
		s.Equal(0, credits.UsedCredits)
		s.Equal(DefaultCreditsPerProperty, credits.CreditsPerProperty)

		_, err = s.service.GetOrCreateCredits(ctx, userID)
		s.Require().NoError(err)
		s.Equal([]string{string(audit.EventCreditsProvisioned)}, s.actions(userID))
	})

	s.Run("existing balance returned unchanged", func() {
		userID := id.UserID(uuid.New())
		s.seedCredits(userID, 10, 4, 2)

		credits, err := s.service.GetOrCreateCredits(ctx, userID)
		s.Require().NoError(err)
		s.Equal(10, credits.TotalCredits)
		s.Equal(4, credits.UsedCredits)
		s.Equal(6, credits.Available())
	})

	s.Run("nil user rejected", func() {
		_, err := s.service.GetOrCreateCredits(ctx, id.UserID{})
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

// =============================================================================
// AddProperty Tests
// =============================================================================

func (s *LedgerServiceSuite) TestAddProperty() {
	ctx := context.Background()

	s.Run("debits one property's worth and records the property", func() {
		userID := id.UserID(uuid.New())
		s.seedCredits(userID, 10, 0, 2)

		property, err := s.service.AddProperty(ctx, userID, sampleDetails())
		s.Require().NoError(err)
		s.Equal(userID, property.UserID)
		s.Equal(models.StatusActive, property.Status)
		s.False(property.ID.IsNil())

		credits, err := s.service.GetOrCreateCredits(ctx, userID)
		s.Require().NoError(err)
		s.Equal(2, credits.UsedCredits)

		s.Equal([]string{
			string(audit.EventCreditsDebited),
			string(audit.EventPropertyAdded),
		}, s.actions(userID))
	})

	s.Run("auto provisions a new user", func() {
		userID := id.UserID(uuid.New())

		_, err := s.service.AddProperty(ctx, userID, sampleDetails())
		s.Require().NoError(err)

		credits, err := s.service.GetOrCreateCredits(ctx, userID)
		s.Require().NoError(err)
		s.Equal(1, credits.UsedCredits)
	})

	s.Run("insufficient credits leaves the balance untouched", func() {
		userID := id.UserID(uuid.New())
		s.seedCredits(userID, 10, 9, 2)

		_, err := s.service.AddProperty(ctx, userID, sampleDetails())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInsufficientCredits))
		de, _ := dErrors.From(err)
		s.Equal(MsgInsufficientCredits, de.Message)

		credits, err := s.service.GetOrCreateCredits(ctx, userID)
		s.Require().NoError(err)
		s.Equal(9, credits.UsedCredits)

		props, err := s.service.ListProperties(ctx, userID, nil)
		s.Require().NoError(err)
		s.Empty(props)
		s.Equal([]string{string(audit.EventInsufficientCredits)}, s.actions(userID))
	})

	s.Run("exhausted balance rejected", func() {
		userID := id.UserID(uuid.New())
		s.seedCredits(userID, 1, 1, 1)

		_, err := s.service.AddProperty(ctx, userID, sampleDetails())
		s.True(dErrors.HasCode(err, dErrors.CodeInsufficientCredits))
	})

	s.Run("missing balance without auto provisioning", func() {
		svc, err := New(s.store, WithAutoProvision(false))
		s.Require().NoError(err)

		_, err = svc.AddProperty(ctx, id.UserID(uuid.New()), sampleDetails())
		s.Require().Error(err)
		de, ok := dErrors.From(err)
		s.Require().True(ok)
		s.Equal(dErrors.CodeInsufficientCredits, de.Code)
		s.Equal(MsgNoCredits, de.Message)
	})

	s.Run("uses request time for timestamps", func() {
		userID := id.UserID(uuid.New())
		fixed := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

		property, err := s.service.AddProperty(requestcontext.WithTime(ctx, fixed), userID, sampleDetails())
		s.Require().NoError(err)
		s.Equal(fixed, property.CreatedAt)
	})
}

func (s *LedgerServiceSuite) TestAddPropertyConcurrent() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())
	s.seedCredits(userID, 5, 0, 1)

	const attempts = 40
	var (
		wg           sync.WaitGroup
		successes    atomic.Int32
		insufficient atomic.Int32
		other        atomic.Int32
	)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.AddProperty(ctx, userID, sampleDetails())
			switch {
			case err == nil:
				successes.Add(1)
			case dErrors.HasCode(err, dErrors.CodeInsufficientCredits):
				insufficient.Add(1)
			default:
				other.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(5), successes.Load())
	s.Equal(int32(attempts-5), insufficient.Load())
	s.Zero(other.Load())

	credits, err := s.service.GetOrCreateCredits(ctx, userID)
	s.Require().NoError(err)
	s.Equal(5, credits.UsedCredits)

	props, err := s.service.ListProperties(ctx, userID, nil)
	s.Require().NoError(err)
	s.Len(props, 5)
}

// =============================================================================
// ListProperties / UpdateStatus / DeleteProperty Tests
// =============================================================================

func (s *LedgerServiceSuite) TestListProperties() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())
	s.seedCredits(userID, 10, 0, 1)

	first, err := s.service.AddProperty(ctx, userID, sampleDetails())
	s.Require().NoError(err)
	_, err = s.service.AddProperty(ctx, userID, sampleDetails())
	s.Require().NoError(err)

	owner := requestcontext.Principal{UserID: userID, Role: requestcontext.RoleUser}
	_, err = s.service.UpdateStatus(ctx, owner, first.ID, models.StatusCompleted)
	s.Require().NoError(err)

	s.Run("all statuses", func() {
		props, err := s.service.ListProperties(ctx, userID, nil)
		s.Require().NoError(err)
		s.Len(props, 2)
	})

	s.Run("filtered by status", func() {
		completed := models.StatusCompleted
		props, err := s.service.ListProperties(ctx, userID, &completed)
		s.Require().NoError(err)
		s.Require().Len(props, 1)
		s.Equal(first.ID, props[0].ID)
	})

	s.Run("invalid filter rejected", func() {
		bogus := models.PropertyStatus("deleted")
		_, err := s.service.ListProperties(ctx, userID, &bogus)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *LedgerServiceSuite) TestUpdateStatus() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())
	s.seedCredits(userID, 10, 0, 1)
	owner := requestcontext.Principal{UserID: userID, Role: requestcontext.RoleUser}

	s.Run("active to archived", func() {
		p, err := s.service.AddProperty(ctx, userID, sampleDetails())
		s.Require().NoError(err)

		updated, err := s.service.UpdateStatus(ctx, owner, p.ID, models.StatusArchived)
		s.Require().NoError(err)
		s.Equal(models.StatusArchived, updated.Status)
	})

	s.Run("terminal status cannot move", func() {
		p, err := s.service.AddProperty(ctx, userID, sampleDetails())
		s.Require().NoError(err)
		_, err = s.service.UpdateStatus(ctx, owner, p.ID, models.StatusCompleted)
		s.Require().NoError(err)

		_, err = s.service.UpdateStatus(ctx, owner, p.ID, models.StatusActive)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown status rejected", func() {
		p, err := s.service.AddProperty(ctx, userID, sampleDetails())
		s.Require().NoError(err)

		_, err = s.service.UpdateStatus(ctx, owner, p.ID, models.PropertyStatus("sold"))
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("other users are forbidden", func() {
		p, err := s.service.AddProperty(ctx, userID, sampleDetails())
		s.Require().NoError(err)

		stranger := requestcontext.Principal{UserID: id.UserID(uuid.New()), Role: requestcontext.RoleUser}
		_, err = s.service.UpdateStatus(ctx, stranger, p.ID, models.StatusArchived)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("admins may act on any property", func() {
		p, err := s.service.AddProperty(ctx, userID, sampleDetails())
		s.Require().NoError(err)

		admin := requestcontext.Principal{UserID: id.UserID(uuid.New()), Role: requestcontext.RoleAdmin}
		updated, err := s.service.UpdateStatus(ctx, admin, p.ID, models.StatusArchived)
		s.Require().NoError(err)
		s.Equal(models.StatusArchived, updated.Status)
	})

	s.Run("unknown property is not found", func() {
		_, err := s.service.UpdateStatus(ctx, owner, id.PropertyID(uuid.New()), models.StatusArchived)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *LedgerServiceSuite) TestDeleteProperty() {
	err := s.service.DeleteProperty(context.Background(), requestcontext.Principal{}, id.PropertyID(uuid.New()))
	s.True(dErrors.HasCode(err, dErrors.CodeNotImplemented))
}

// =============================================================================
// GrantCredits Tests
// =============================================================================

func (s *LedgerServiceSuite) TestGrantCredits() {
	ctx := context.Background()
	admin := requestcontext.Principal{UserID: id.UserID(uuid.New()), Role: requestcontext.RoleAdmin}

	s.Run("admin top-up provisions then grants", func() {
		userID := id.UserID(uuid.New())

		credits, err := s.service.GrantCredits(ctx, admin, userID, 10)
		s.Require().NoError(err)
		s.Equal(DefaultStartingCredits+10, credits.TotalCredits)
		s.Contains(s.actions(userID), string(audit.EventCreditsGranted))
	})

	s.Run("granted credits are spendable", func() {
		userID := id.UserID(uuid.New())
		s.seedCredits(userID, 1, 1, 1)

		_, err := s.service.AddProperty(ctx, userID, sampleDetails())
		s.True(dErrors.HasCode(err, dErrors.CodeInsufficientCredits))

		_, err = s.service.GrantCredits(ctx, admin, userID, 1)
		s.Require().NoError(err)

		_, err = s.service.AddProperty(ctx, userID, sampleDetails())
		s.NoError(err)
	})

	s.Run("non-admin forbidden", func() {
		user := requestcontext.Principal{UserID: id.UserID(uuid.New()), Role: requestcontext.RoleUser}
		_, err := s.service.GrantCredits(ctx, user, user.UserID, 10)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("non-positive amount rejected", func() {
		_, err := s.service.GrantCredits(ctx, admin, id.UserID(uuid.New()), 0)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

// =============================================================================
// Search Archive Tests
// =============================================================================

func (s *LedgerServiceSuite) TestArchiveProperty() {
	user := requestcontext.Principal{UserID: id.UserID(uuid.New()), Role: requestcontext.RoleUser}
	t0 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	rating := 4

	s.Run("archiving is free and defaults to the caller", func() {
		ctx := requestcontext.WithTime(context.Background(), t0)
		s.seedCredits(user.UserID, 2, 0, 1)

		entry, err := s.service.ArchiveProperty(ctx, user, models.ArchivedProperty{
			PropertyRef: " PROP-KA-1001 ",
			Details:     sampleDetails(),
			Notes:       "close to metro",
			Rating:      &rating,
		})
		s.Require().NoError(err)
		s.Equal(user.UserID, entry.UserID)
		s.Equal("PROP-KA-1001", entry.PropertyRef)
		s.Equal(t0, entry.ArchivedAt)

		credits, err := s.service.GetOrCreateCredits(ctx, user.UserID)
		s.Require().NoError(err)
		s.Equal(0, credits.UsedCredits)
		s.Contains(s.actions(user.UserID), string(audit.EventSearchArchived))
	})

	s.Run("re-archiving updates notes and keeps the first search time", func() {
		later := requestcontext.WithTime(context.Background(), t0.Add(time.Hour))
		first, err := s.store.ListArchive(context.Background(), user.UserID)
		s.Require().NoError(err)
		s.Require().Len(first, 1)

		entry, err := s.service.ArchiveProperty(later, user, models.ArchivedProperty{
			PropertyRef: "PROP-KA-1001",
			Details:     sampleDetails(),
			Notes:       "visited, good light",
		})
		s.Require().NoError(err)
		s.Equal(first[0].ID, entry.ID)
		s.Equal(t0, entry.ArchivedAt)
		s.Equal(t0.Add(time.Hour), entry.UpdatedAt)
		s.Equal("visited, good light", entry.Notes)
		s.Nil(entry.Rating)

		list, err := s.service.ListArchive(context.Background(), user, id.UserID{})
		s.Require().NoError(err)
		s.Len(list, 1)
	})

	s.Run("rating outside one to five", func() {
		bad := 6
		_, err := s.service.ArchiveProperty(context.Background(), user, models.ArchivedProperty{
			PropertyRef: "PROP-KA-2002",
			Rating:      &bad,
		})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("blank property id", func() {
		_, err := s.service.ArchiveProperty(context.Background(), user, models.ArchivedProperty{PropertyRef: "  "})
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("another user's archive is forbidden", func() {
		other := id.UserID(uuid.New())
		_, err := s.service.ArchiveProperty(context.Background(), user, models.ArchivedProperty{
			UserID:      other,
			PropertyRef: "PROP-KA-3003",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

		_, err = s.service.ListArchive(context.Background(), user, other)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		s.Contains(s.actions(user.UserID), string(audit.EventAccessDenied))
	})
}

func (s *LedgerServiceSuite) TestListArchive() {
	ctx := context.Background()
	alice := requestcontext.Principal{UserID: id.UserID(uuid.New()), Role: requestcontext.RoleUser}
	bob := requestcontext.Principal{UserID: id.UserID(uuid.New()), Role: requestcontext.RoleUser}
	admin := requestcontext.Principal{UserID: id.UserID(uuid.New()), Role: requestcontext.RoleAdmin}
	t0 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	for i, ref := range []string{"PROP-KA-1001", "PROP-MH-2002"} {
		_, err := s.service.ArchiveProperty(requestcontext.WithTime(ctx, t0.Add(time.Duration(i)*time.Minute)), alice,
			models.ArchivedProperty{PropertyRef: ref, Details: sampleDetails()})
		s.Require().NoError(err)
	}
	_, err := s.service.ArchiveProperty(ctx, bob, models.ArchivedProperty{PropertyRef: "PROP-KA-1001", Details: sampleDetails()})
	s.Require().NoError(err)

	s.Run("newest first and only the owner's", func() {
		list, err := s.service.ListArchive(ctx, alice, alice.UserID)
		s.Require().NoError(err)
		s.Require().Len(list, 2)
		s.Equal("PROP-MH-2002", list[0].PropertyRef)
		s.Equal("PROP-KA-1001", list[1].PropertyRef)
	})

	s.Run("admin reads any user's archive", func() {
		list, err := s.service.ListArchive(ctx, admin, bob.UserID)
		s.Require().NoError(err)
		s.Require().Len(list, 1)
		s.Equal(bob.UserID, list[0].UserID)
	})
}
