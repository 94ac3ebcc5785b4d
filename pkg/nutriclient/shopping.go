package nutriclient

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/pageza/nutriapp/backend/pkg/nutrition"
	"github.com/pageza/nutriapp/backend/pkg/types"
)

// ErrToggleInFlight rejects a second toggle of an item whose first toggle
// has not finished.
var ErrToggleInFlight = errors.New("a toggle for this item is already in flight")

// ShoppingList keeps the session user's shopping list in step with the
// server. A nil list means none was generated; an empty one means the
// generation found no ingredients.
type ShoppingList struct {
	client *Client

	mu       sync.Mutex
	list     *nutrition.ShoppingList
	inFlight map[string]struct{}
}

func NewShoppingList(client *Client) *ShoppingList {
	return &ShoppingList{client: client, inFlight: make(map[string]struct{})}
}

// List returns a copy of the held list, or nil.
func (s *ShoppingList) List() *nutrition.ShoppingList {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.list == nil {
		return nil
	}
	cp := *s.list
	cp.Items = append([]nutrition.ShoppingListItem{}, s.list.Items...)
	return &cp
}

// GenerateFromFavorites builds a fresh list from the user's favorites.
func (s *ShoppingList) GenerateFromFavorites(ctx context.Context) (*nutrition.ShoppingList, error) {
	session, err := s.client.requireSession()
	if err != nil {
		return nil, err
	}
	var list nutrition.ShoppingList
	req := types.GenerateShoppingListRequest{UserID: session.UserID.String()}
	if err := s.client.do(ctx, http.MethodPost, "/ShoppingLists/generate-from-favorites", req, &list); err != nil {
		return nil, err
	}
	s.replace(&list)
	return s.List(), nil
}

// Latest loads the most recent list. A 404 leaves no list held and returns
// (nil, nil).
func (s *ShoppingList) Latest(ctx context.Context) (*nutrition.ShoppingList, error) {
	session, err := s.client.requireSession()
	if err != nil {
		return nil, err
	}
	var list nutrition.ShoppingList
	err = s.client.do(ctx, http.MethodGet, "/ShoppingLists/"+session.UserID.String()+"/latest", nil, &list)
	if IsStatus(err, http.StatusNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.replace(&list)
	return s.List(), nil
}

func (s *ShoppingList) replace(list *nutrition.ShoppingList) {
	if list.Items == nil {
		list.Items = []nutrition.ShoppingListItem{}
	}
	s.mu.Lock()
	s.list = list
	s.mu.Unlock()
}

// ToggleItem asks the server to set itemID to !currentChecked and, on
// success, updates that item only. Toggles of different items run
// independently.
func (s *ShoppingList) ToggleItem(ctx context.Context, itemID string, currentChecked bool) error {
	s.mu.Lock()
	if _, busy := s.inFlight[itemID]; busy {
		s.mu.Unlock()
		return ErrToggleInFlight
	}
	s.inFlight[itemID] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, itemID)
		s.mu.Unlock()
	}()

	var item nutrition.ShoppingListItem
	if err := s.client.do(ctx, http.MethodPut, "/ShoppingListItems/"+itemID+"/toggle", !currentChecked, &item); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.list == nil {
		return nil
	}
	for i := range s.list.Items {
		if s.list.Items[i].ID == itemID {
			s.list.Items[i].IsChecked = item.IsChecked
			break
		}
	}
	return nil
}

// InFlight reports whether a toggle of itemID is outstanding.
func (s *ShoppingList) InFlight(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inFlight[itemID]
	return ok
}

// Progress counts checked items of the held list.
func (s *ShoppingList) Progress() nutrition.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.list == nil {
		return nutrition.Progress{}
	}
	return nutrition.ComputeProgress(s.list.Items)
}
