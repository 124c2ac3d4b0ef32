package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/internal/domain"
	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/internal/repository"
	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/pkg/database"
	apperrors "github.com/saivamshimuriki/realtor-platform-saivamshim-backend/pkg/errors"
)

// PropertyRepository implements repository.PropertyRepository using PostgreSQL.
type PropertyRepository struct {
	pool database.DBTX
}

// NewPropertyRepository creates a new PostgreSQL-backed property repository.
func NewPropertyRepository(pool database.DBTX) *PropertyRepository {
	return &PropertyRepository{pool: pool}
}

// Create inserts a new property and populates the generated ID.
func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	query := `
		INSERT INTO properties (title, description, price, location, bedrooms, bathrooms, area, property_type, listing_type, images, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	images := p.Images
	if images == nil {
		images = []string{}
	}

	err := r.pool.QueryRow(ctx, query,
		p.Title,
		p.Description,
		p.Price,
		p.Location,
		p.Bedrooms,
		p.Bathrooms,
		p.Area,
		p.PropertyType,
		p.ListingType,
		images,
		p.OwnerID,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert property: %w", err)
	}

	return nil
}

// GetByID retrieves a property by its ID.
func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	query := `
		SELECT id, title, description, price, location, bedrooms, bathrooms, area, property_type, listing_type, images, owner_id
		FROM properties
		WHERE id = $1`

	var p domain.Property
	err := r.pool.QueryRow(ctx, query, id).Scan(propertyFields(&p)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan property: %w", err)
	}

	return &p, nil
}

// GetDetail retrieves a property joined with its owner's username.
func (r *PropertyRepository) GetDetail(ctx context.Context, id int64) (*domain.PropertyDetail, error) {
	query := `
		SELECT p.id, p.title, p.description, p.price, p.location, p.bedrooms, p.bathrooms, p.area, p.property_type, p.listing_type, p.images, p.owner_id,
		       u.username AS owner_username
		FROM properties p
		JOIN users u ON p.owner_id = u.id
		WHERE p.id = $1`

	var d domain.PropertyDetail
	fields := append(propertyFields(&d.Property), &d.OwnerUsername)
	err := r.pool.QueryRow(ctx, query, id).Scan(fields...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan property detail: %w", err)
	}

	return &d, nil
}

// List returns properties matching the filter along with the total count of
// matching rows. Optional predicates are ANDed in a fixed order, each
// contributing exactly one bound parameter; sort and pagination fragments come
// from a closed menu of server-controlled strings so no caller input ever
// reaches the query text.
func (r *PropertyRepository) List(ctx context.Context, filter repository.PropertyFilter) ([]domain.Property, int, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.Location != nil {
		conditions = append(conditions, fmt.Sprintf("location ILIKE $%d", argIndex))
		args = append(args, "%"+*filter.Location+"%")
		argIndex++
	}

	if filter.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price >= $%d", argIndex))
		args = append(args, *filter.MinPrice)
		argIndex++
	}

	if filter.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price <= $%d", argIndex))
		args = append(args, *filter.MaxPrice)
		argIndex++
	}

	if filter.PropertyType != nil {
		conditions = append(conditions, fmt.Sprintf("property_type ILIKE $%d", argIndex))
		args = append(args, *filter.PropertyType)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	orderClause := "ORDER BY id DESC"
	switch filter.SortBy {
	case domain.SortPriceAsc:
		orderClause = "ORDER BY price ASC"
	case domain.SortPriceDesc:
		orderClause = "ORDER BY price DESC"
	}

	// count(*) OVER() yields the total under the same predicates in a single
	// round trip, so the page metadata always agrees with the filtered rows.
	query := fmt.Sprintf(`
		SELECT id, title, description, price, location, bedrooms, bathrooms, area, property_type, listing_type, images, owner_id,
			   count(*) OVER() AS total_count
		FROM properties
		%s
		%s
		LIMIT $%d OFFSET $%d`,
		whereClause, orderClause, argIndex, argIndex+1,
	)

	limit := filter.Limit
	if limit <= 0 {
		limit = 5
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}

	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	var (
		properties []domain.Property
		totalCount int
	)

	for rows.Next() {
		var p domain.Property
		fields := append(propertyFields(&p), &totalCount)
		if err := rows.Scan(fields...); err != nil {
			return nil, 0, fmt.Errorf("scan property row: %w", err)
		}
		properties = append(properties, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate property rows: %w", err)
	}

	if properties == nil {
		properties = []domain.Property{}
	}

	// Past the last page the window function has no rows to report. Fall
	// back to a filtered count so the metadata stays correct.
	if len(properties) == 0 {
		countQuery := "SELECT count(*) FROM properties " + whereClause
		countArgs := args[:len(args)-2]
		if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&totalCount); err != nil {
			return nil, 0, fmt.Errorf("count properties: %w", err)
		}
	}

	return properties, totalCount, nil
}

// Update modifies the mutable fields of a property and returns the new row.
// OwnerID is deliberately not part of the SET list; ownership never changes.
func (r *PropertyRepository) Update(ctx context.Context, id int64, update repository.PropertyUpdate) (*domain.Property, error) {
	query := `
		UPDATE properties
		SET title = $1, description = $2, price = $3
		WHERE id = $4
		RETURNING id, title, description, price, location, bedrooms, bathrooms, area, property_type, listing_type, images, owner_id`

	var p domain.Property
	err := r.pool.QueryRow(ctx, query,
		update.Title,
		update.Description,
		update.Price,
		id,
	).Scan(propertyFields(&p)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("property", id)
		}
		return nil, fmt.Errorf("update property: %w", err)
	}

	return &p, nil
}

// Delete removes a property by its ID.
func (r *PropertyRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM properties WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("property", id)
	}

	return nil
}

// propertyFields returns scan destinations in column order.
func propertyFields(p *domain.Property) []any {
	return []any{
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Price,
		&p.Location,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.Area,
		&p.PropertyType,
		&p.ListingType,
		&p.Images,
		&p.OwnerID,
	}
}
