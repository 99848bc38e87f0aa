package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/kochwerk/kochwerk/internal/db/models"
)

// Recipes lists the catalog. A reachable server is authoritative and
// refreshes the mirror; otherwise the mirror is served.
func (c *Client) Recipes(ctx context.Context) ([]models.Recipe, error) {
	if !c.Reachable(ctx) {
		return c.recipes.All()
	}

	var recipes []models.Recipe
	if err := c.do(ctx, http.MethodGet, "/api/recipes", nil, &recipes); err != nil {
		log.Warn().Err(err).Msg("recipe fetch failed, serving offline mirror")
		return c.recipes.All()
	}

	if err := c.recipes.ReplaceAll(recipes); err != nil {
		log.Warn().Err(err).Msg("can't refresh recipe mirror")
	}

	return recipes, nil
}

// Recipe fetches one recipe, falling back to the mirror.
func (c *Client) Recipe(ctx context.Context, id uint64) (*models.Recipe, error) {
	if c.Reachable(ctx) {
		recipe := new(models.Recipe)
		if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/recipes/%d", id), nil, recipe); err == nil {
			return recipe, nil
		}
	}

	return c.recipes.Find(id)
}

// CreateRecipe writes the mirror first, then relays. The mirror-assigned
// id stands even when the relay fails.
func (c *Client) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	if err := c.recipes.Insert(recipe); err != nil {
		return err
	}

	c.relay(ctx, http.MethodPost, "/api/recipes", recipe)

	return nil
}

// UpdateRecipe replaces the mirrored recipe and relays the change.
func (c *Client) UpdateRecipe(ctx context.Context, recipe *models.Recipe) error {
	if err := c.recipes.Replace(recipe); err != nil {
		return err
	}

	c.relay(ctx, http.MethodPut, fmt.Sprintf("/api/recipes/%d", recipe.ID), recipe)

	return nil
}

// DeleteRecipe removes the mirrored recipe and relays the deletion.
func (c *Client) DeleteRecipe(ctx context.Context, id uint64) error {
	if err := c.recipes.Remove(id); err != nil {
		return err
	}

	c.relay(ctx, http.MethodDelete, fmt.Sprintf("/api/recipes/%d", id), nil)

	return nil
}

// equipmentPage mirrors the server's paginated listing shape.
type equipmentPage struct {
	Data    []models.Equipment `json:"data"`
	Page    int                `json:"page"`
	PerPage int                `json:"perPage"`
	Total   int64              `json:"total"`
}

// Equipment lists all equipment. The server's listing is paginated, so a
// refresh walks the pages before overwriting the mirror.
func (c *Client) Equipment(ctx context.Context) ([]models.Equipment, error) {
	if !c.Reachable(ctx) {
		return c.equipment.All()
	}

	var all []models.Equipment

	for page := 1; ; page++ {
		var result equipmentPage

		path := "/api/equipment?page=" + url.QueryEscape(fmt.Sprint(page))
		if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
			log.Warn().Err(err).Msg("equipment fetch failed, serving offline mirror")
			return c.equipment.All()
		}

		all = append(all, result.Data...)

		if len(result.Data) < result.PerPage || int64(len(all)) >= result.Total {
			break
		}
	}

	if all == nil {
		all = []models.Equipment{}
	}

	if err := c.equipment.ReplaceAll(all); err != nil {
		log.Warn().Err(err).Msg("can't refresh equipment mirror")
	}

	return all, nil
}

// CreateEquipment writes the mirror first, then relays.
func (c *Client) CreateEquipment(ctx context.Context, equipment *models.Equipment) error {
	if err := c.equipment.Insert(equipment); err != nil {
		return err
	}

	c.relay(ctx, http.MethodPost, "/api/equipment", equipment)

	return nil
}

// UpdateEquipment replaces the mirrored record and relays the change.
func (c *Client) UpdateEquipment(ctx context.Context, equipment *models.Equipment) error {
	if err := c.equipment.Replace(equipment); err != nil {
		return err
	}

	c.relay(ctx, http.MethodPut, fmt.Sprintf("/api/equipment/%d", equipment.ID), equipment)

	return nil
}

// DeleteEquipment removes the mirrored record and relays the deletion.
func (c *Client) DeleteEquipment(ctx context.Context, id uint64) error {
	if err := c.equipment.Remove(id); err != nil {
		return err
	}

	c.relay(ctx, http.MethodDelete, fmt.Sprintf("/api/equipment/%d", id), nil)

	return nil
}

// Instagram returns the feed image list, mirrored like the catalog.
func (c *Client) Instagram(ctx context.Context) ([]string, error) {
	mirrorPath := filepath.Join(c.dataDir, "instagram.json")

	var feed struct {
		Images []string `json:"images"`
	}

	if c.Reachable(ctx) {
		if err := c.do(ctx, http.MethodGet, "/api/instagram", nil, &feed); err == nil {
			if feed.Images == nil {
				feed.Images = []string{}
			}

			if data, err := json.Marshal(feed); err == nil {
				if err := os.WriteFile(mirrorPath, data, 0o600); err != nil {
					log.Warn().Err(err).Msg("can't refresh instagram mirror")
				}
			}

			return feed.Images, nil
		}
	}

	data, err := os.ReadFile(mirrorPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}

		return nil, errors.Wrap(err, "failed to read instagram mirror")
	}

	if err := json.Unmarshal(data, &feed); err != nil {
		log.Error().Err(err).Msg("corrupt instagram mirror, serving empty feed")
		return []string{}, nil
	}

	return feed.Images, nil
}

// relay pushes a local write to the server when it is reachable. A failed
// relay only warns; the mirror already holds the authoritative result.
func (c *Client) relay(ctx context.Context, method, path string, payload any) {
	if !c.Reachable(ctx) {
		return
	}

	if err := c.do(ctx, method, path, payload, nil); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("relay to server failed, keeping local write")
	}
}
