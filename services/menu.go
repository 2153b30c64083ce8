package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"food-order/db"
	"food-order/models"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("not found")

func ListTenants(ctx context.Context) ([]models.Tenant, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, name, logo, hero FROM tenants
		WHERE is_active
		ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []models.Tenant
	for rows.Next() {
		var id int64
		var t models.Tenant
		if err := rows.Scan(&id, &t.Name, &t.Logo, &t.Hero); err != nil {
			return nil, err
		}
		t.ID = strconv.FormatInt(id, 10)
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

func GetTenant(ctx context.Context, idStr string) (*models.Tenant, error) {
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("tenant id %q: %w", idStr, ErrNotFound)
	}
	t := models.Tenant{ID: idStr}
	err = db.Pool.QueryRow(ctx, `SELECT name, logo, hero FROM tenants WHERE id = $1 AND is_active`, id).
		Scan(&t.Name, &t.Logo, &t.Hero)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("tenant %s: %w", idStr, ErrNotFound)
		}
		return nil, err
	}
	return &t, nil
}

func ListMenuByTenant(ctx context.Context, tenantIDStr string) ([]models.MenuItem, error) {
	tenantID, err := strconv.ParseInt(tenantIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("tenant id %q: %w", tenantIDStr, ErrNotFound)
	}
	rows, err := db.Pool.Query(ctx, `
		SELECT id, tenant_id, name, description, price, image FROM menu_items
		WHERE tenant_id = $1
		ORDER BY id`,
		tenantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func GetMenuItem(ctx context.Context, idStr string) (*models.MenuItem, error) {
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("menu item id %q: %w", idStr, ErrNotFound)
	}
	row := db.Pool.QueryRow(ctx, `
		SELECT id, tenant_id, name, description, price, image FROM menu_items WHERE id = $1`, id)
	item, err := scanMenuItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("menu item %s: %w", idStr, ErrNotFound)
		}
		return nil, err
	}
	return &item, nil
}

func scanMenuItem(row pgx.Row) (models.MenuItem, error) {
	var id, tenantID int64
	var item models.MenuItem
	if err := row.Scan(&id, &tenantID, &item.Name, &item.Description, &item.Price, &item.Image); err != nil {
		return models.MenuItem{}, err
	}
	item.ID = strconv.FormatInt(id, 10)
	item.TenantID = strconv.FormatInt(tenantID, 10)
	return item, nil
}

// FilterMenu keeps the items whose name or description contains query,
// ignoring case. An empty query keeps everything.
func FilterMenu(items []models.MenuItem, query string) []models.MenuItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	var out []models.MenuItem
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), q) || strings.Contains(strings.ToLower(it.Description), q) {
			out = append(out, it)
		}
	}
	return out
}
