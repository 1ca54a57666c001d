package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Dushime20/urutibiz-backend-sub001/internal/entity"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/repository/contract"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/repository/specification"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Store is an in-memory implementation of the repository contracts. It backs
// service tests and single-process deployments without a database. Reads
// return copies so callers never alias the stored records.
type Store struct {
	mu           sync.RWMutex
	reservations *cache.Cache
	histories    map[uuid.UUID][]*entity.StatusHistory
	resources    map[uuid.UUID]*entity.Resource
	rateCards    map[uuid.UUID][]*entity.RateCard
	policies     map[entity.PolicyTier]*entity.CancellationPolicy
}

func NewStore() *Store {
	return &Store{
		reservations: cache.New(cache.NoExpiration, 10*time.Minute),
		histories:    make(map[uuid.UUID][]*entity.StatusHistory),
		resources:    make(map[uuid.UUID]*entity.Resource),
		rateCards:    make(map[uuid.UUID][]*entity.RateCard),
		policies:     make(map[entity.PolicyTier]*entity.CancellationPolicy),
	}
}

// Seed helpers for tests and bootstrap.

func (s *Store) PutResource(r *entity.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *r
	s.resources[r.Id] = &cp
}

func (s *Store) PutRateCard(resourceId uuid.UUID, card *entity.RateCard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *card
	s.rateCards[resourceId] = append(s.rateCards[resourceId], &cp)
}

func (s *Store) PutPolicy(p *entity.CancellationPolicy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.policies[p.Tier] = &cp
}

// ReservationRepository

func (s *Store) Create(ctx context.Context, reservation *entity.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *reservation
	s.reservations.Set(reservation.Id.String(), &cp, cache.NoExpiration)
	return nil
}

func (s *Store) Update(ctx context.Context, reservation *entity.Reservation) error {
	return s.Create(ctx, reservation)
}

func (s *Store) FindById(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if x, found := s.reservations.Get(id.String()); found {
		cp := *x.(*entity.Reservation)
		return &cp, nil
	}
	return nil, nil
}

func (s *Store) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*entity.Reservation
	for _, item := range s.reservations.Items() {
		r := item.Object.(*entity.Reservation)
		if matchesAll(r, specs) {
			cp := *r
			out = append(out, &cp)
		}
	}
	applyOrdering(out, specs)
	return applyPagination(out, specs), nil
}

func (s *Store) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	rows, err := s.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

func (s *Store) CountOverlapping(ctx context.Context, resourceId uuid.UUID, start, end time.Time, exclude uuid.UUID) (int64, error) {
	specs := []specification.Specification{
		specification.ByResource{ResourceID: resourceId},
		specification.ByStatuses{Statuses: []string{
			string(entity.ReservationStatusConfirmed),
			string(entity.ReservationStatusInProgress),
		}},
		specification.OverlappingWindow{StartAt: start, EndAt: end},
	}
	if exclude != uuid.Nil {
		specs = append(specs, specification.ExcludeID{ID: exclude})
	}
	return s.Count(ctx, specs...)
}

func (s *Store) FindDuePendingExpiry(ctx context.Context, now time.Time) ([]*entity.Reservation, error) {
	return s.FindAll(ctx,
		specification.ByStatuses{Statuses: []string{string(entity.ReservationStatusPending)}},
		specification.ExpiredBefore{At: now},
		specification.PaymentStatusNot{Status: string(entity.PaymentStatusCompleted)},
	)
}

func (s *Store) FindDueToStart(ctx context.Context, now time.Time) ([]*entity.Reservation, error) {
	return s.FindAll(ctx,
		specification.ByStatuses{Statuses: []string{string(entity.ReservationStatusConfirmed)}},
		specification.StartedBefore{At: now},
	)
}

func (s *Store) FindDueToEnd(ctx context.Context, now time.Time) ([]*entity.Reservation, error) {
	return s.FindAll(ctx,
		specification.ByStatuses{Statuses: []string{string(entity.ReservationStatusInProgress)}},
		specification.EndedBefore{At: now},
	)
}

// StatusHistoryRepository

func (s *Store) CreateHistory(ctx context.Context, entry *entity.StatusHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *entry
	s.histories[entry.ReservationId] = append(s.histories[entry.ReservationId], &cp)
	return nil
}

func (s *Store) FindByReservation(ctx context.Context, reservationId uuid.UUID) ([]*entity.StatusHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.histories[reservationId]
	out := make([]*entity.StatusHistory, 0, len(entries))
	for _, e := range entries {
		cp := *e
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Catalog repositories

func (s *Store) FindResourceById(ctx context.Context, id uuid.UUID) (*entity.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.resources[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (s *Store) FindActiveByResource(ctx context.Context, resourceId uuid.UUID, at time.Time) (*entity.RateCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var best *entity.RateCard
	for _, card := range s.rateCards[resourceId] {
		if card.EffectiveFrom.After(at) {
			continue
		}
		if !card.EffectiveTo.IsZero() && !card.EffectiveTo.After(at) {
			continue
		}
		if best == nil || card.EffectiveFrom.After(best.EffectiveFrom) {
			best = card
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (s *Store) FindByTier(ctx context.Context, tier entity.PolicyTier) (*entity.CancellationPolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.policies[tier]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

// Spec evaluation. Only the specification types the services compose are
// interpreted here; an unknown spec matches nothing so a test fails loudly
// rather than silently over-matching.

func matchesAll(r *entity.Reservation, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if r.Id != s.ID {
				return false
			}
		case specification.ByResource:
			if r.ResourceId != s.ResourceID {
				return false
			}
		case specification.ByCode:
			if r.Code != s.Code {
				return false
			}
		case specification.ByStatuses:
			found := false
			for _, st := range s.Statuses {
				if string(r.Status) == st {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case specification.ExcludeID:
			if r.Id == s.ID {
				return false
			}
		case specification.OverlappingWindow:
			if !r.Overlaps(s.StartAt, s.EndAt) {
				return false
			}
		case specification.WindowWithin:
			if !r.Overlaps(s.From, s.To) {
				return false
			}
		case specification.ExpiredBefore:
			if r.ExpiresAt.IsZero() || r.ExpiresAt.After(s.At) {
				return false
			}
		case specification.StartedBefore:
			if r.StartAt.After(s.At) {
				return false
			}
		case specification.EndedBefore:
			if r.EndAt.After(s.At) {
				return false
			}
		case specification.PaymentStatusNot:
			if string(r.PaymentStatus) == s.Status {
				return false
			}
		case specification.OrderBy, specification.Pagination:
			// handled after filtering
		default:
			return false
		}
	}
	return true
}

func applyOrdering(rows []*entity.Reservation, specs []specification.Specification) {
	for _, spec := range specs {
		order, ok := spec.(specification.OrderBy)
		if !ok {
			continue
		}
		sort.SliceStable(rows, func(i, j int) bool {
			var before bool
			switch order.Field {
			case "start_at":
				before = rows[i].StartAt.Before(rows[j].StartAt)
			default:
				before = rows[i].CreatedAt.Before(rows[j].CreatedAt)
			}
			if order.Desc {
				return !before
			}
			return before
		})
	}
}

func applyPagination(rows []*entity.Reservation, specs []specification.Specification) []*entity.Reservation {
	for _, spec := range specs {
		page, ok := spec.(specification.Pagination)
		if !ok {
			continue
		}
		if page.Offset >= len(rows) {
			return nil
		}
		rows = rows[page.Offset:]
		if page.Limit > 0 && page.Limit < len(rows) {
			rows = rows[:page.Limit]
		}
	}
	return rows
}

// Unit-of-work adapters. The store has no transactions, so Begin, Commit and
// Rollback are no-ops and every accessor returns a view over the same store.

type historyView struct{ store *Store }

func (v historyView) Create(ctx context.Context, entry *entity.StatusHistory) error {
	return v.store.CreateHistory(ctx, entry)
}

func (v historyView) FindByReservation(ctx context.Context, reservationId uuid.UUID) ([]*entity.StatusHistory, error) {
	return v.store.FindByReservation(ctx, reservationId)
}

type resourceView struct{ store *Store }

func (v resourceView) FindById(ctx context.Context, id uuid.UUID) (*entity.Resource, error) {
	return v.store.FindResourceById(ctx, id)
}

type unitOfWork struct{ store *Store }

func (u unitOfWork) Begin(ctx context.Context) error { return nil }
func (u unitOfWork) Commit() error                   { return nil }
func (u unitOfWork) Rollback() error                 { return nil }

func (u unitOfWork) ReservationRepository() contract.ReservationRepository {
	return u.store
}

func (u unitOfWork) StatusHistoryRepository() contract.StatusHistoryRepository {
	return historyView{store: u.store}
}

func (u unitOfWork) ResourceRepository() contract.ResourceRepository {
	return resourceView{store: u.store}
}

func (u unitOfWork) RateCardRepository() contract.RateCardRepository {
	return u.store
}

func (u unitOfWork) CancellationPolicyRepository() contract.CancellationPolicyRepository {
	return u.store
}

// Factory satisfies unitofwork.RepositoryFactory over the store.
type Factory struct {
	Store *Store
}

func NewFactory(store *Store) *Factory {
	return &Factory{Store: store}
}

func (f *Factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return unitOfWork{store: f.Store}
}
