package bgg

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

const (
	thingTypes     = "boardgame,boardgameexpansion"
	gameChunkSize  = 20
	listItemDomain = "boardgame"
)

// ResolveExpansionFamily returns the ids linked to gameID by inbound
// "boardgameexpansion" links, in the order the catalog lists them.
func (c *Client) ResolveExpansionFamily(ctx context.Context, gameID string) ([]string, error) {
	data, err := c.Fetch(ctx, APIv2, "thing", map[string]string{
		"id":   gameID,
		"type": thingTypes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch game %s: %w", gameID, err)
	}

	response, err := DecodeXML[ThingResponse](data, "items.item", "items.item.name", "items.item.link")
	if err != nil {
		return nil, fmt.Errorf("failed to decode game %s: %w", gameID, err)
	}

	if len(response.Items.Item) == 0 {
		return nil, fmt.Errorf("game %s: %w", gameID, ErrNotFound)
	}

	return response.Items.Item[0].ExpansionFamily(), nil
}

// GetGames looks up game details in batches of 20 ids per request.
// Ids the catalog does not know are silently absent from the result.
func (c *Client) GetGames(ctx context.Context, ids []string) ([]ThingItem, error) {
	var items []ThingItem

	for chunk := range slices.Chunk(ids, gameChunkSize) {
		data, err := c.Fetch(ctx, APIv2, "thing", map[string]string{
			"id":   strings.Join(chunk, ","),
			"type": thingTypes,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch games: %w", err)
		}

		response, err := DecodeXML[ThingResponse](data, "items.item", "items.item.name", "items.item.link")
		if err != nil {
			return nil, fmt.Errorf("failed to decode games: %w", err)
		}

		items = append(items, response.Items.Item...)
	}

	slog.Debug("Game details fetched", "requested", len(ids), "found", len(items))

	return items, nil
}

func (c *Client) GetUser(ctx context.Context, username string) (*User, error) {
	data, err := c.Fetch(ctx, APIv2, "user", map[string]string{"name": username})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", username, err)
	}

	response, err := DecodeXML[UserResponse](data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", username, err)
	}

	if response.User.ID == "" {
		return nil, fmt.Errorf("user %s: %w", username, ErrNotFound)
	}

	return &response.User, nil
}

// GetUserListItems returns every list item authored by userID across all pages.
func (c *Client) GetUserListItems(ctx context.Context, userID string) ([]ListItem, error) {
	return FetchAllPages[ListItem](ctx, c, "listitems", map[string]string{
		"author": userID,
		"domain": listItemDomain,
	})
}

// GetThread returns a forum thread, optionally limited to posts from minArticleID on.
func (c *Client) GetThread(ctx context.Context, threadID, minArticleID string) (*Thread, error) {
	params := map[string]string{"id": threadID}
	if minArticleID != "" {
		params["minarticleid"] = minArticleID
	}

	data, err := c.Fetch(ctx, APIv2, "thread", params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch thread %s: %w", threadID, err)
	}

	response, err := DecodeXML[ThreadResponse](data, "thread.articles.article")
	if err != nil {
		return nil, fmt.Errorf("failed to decode thread %s: %w", threadID, err)
	}

	return &response.Thread, nil
}

// GetGeeklist returns a community list with all of its items from the legacy API.
func (c *Client) GetGeeklist(ctx context.Context, listID string) (*Geeklist, error) {
	data, err := c.Fetch(ctx, APIv1, "geeklist/"+listID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch list %s: %w", listID, err)
	}

	response, err := DecodeXML[GeeklistResponse](data, "geeklist.item")
	if err != nil {
		return nil, fmt.Errorf("failed to decode list %s: %w", listID, err)
	}

	return &response.Geeklist, nil
}
