package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sbnm007/traffic-management-system/internal/core/domain"
)

type SegmentRepository struct {
	db *sql.DB
}

func NewSegmentRepository(db *sql.DB) *SegmentRepository {
	return &SegmentRepository{db: db}
}

// IntersectingSegments finds every road segment whose shape intersects the
// route polyline, ordered by the fractional position along the route where
// the intersection begins. Segments entering the route at the same position
// keep the order the store returns them in.
func (r *SegmentRepository) IntersectingSegments(ctx context.Context, route domain.Polyline) ([]domain.SegmentMatch, error) {
	query := `
	SELECT rs.segment_id,
	       ST_LineLocatePoint(route.geom, ST_StartPoint(ST_Intersection(rs.geom, route.geom))) AS position
	FROM road_segments rs,
	     (SELECT ST_SetSRID(ST_GeomFromText($1), 4326) AS geom) AS route
	WHERE ST_Intersects(rs.geom, route.geom)
	ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query, lineStringWKT(route))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	defer rows.Close()

	var matches []domain.SegmentMatch
	for rows.Next() {
		var match domain.SegmentMatch
		var position sql.NullFloat64

		if err := rows.Scan(&match.SegmentID, &position); err != nil {
			return nil, err
		}

		// ST_StartPoint yields NULL for degenerate intersections (a single
		// point); treat those as entering at the start of the route.
		if position.Valid {
			match.Position = position.Float64
		}

		matches = append(matches, match)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return matches, nil
}

func (r *SegmentRepository) GetBySegmentID(ctx context.Context, segmentID string) (*domain.RoadSegment, error) {
	query := `
	SELECT segment_id, COALESCE(name, ''), COALESCE(osm_id, 0), capacity, current_load
	FROM road_segments
	WHERE segment_id = $1
	`

	var segment domain.RoadSegment
	err := r.db.QueryRowContext(ctx, query, segmentID).Scan(
		&segment.SegmentID,
		&segment.Name,
		&segment.OSMID,
		&segment.Capacity,
		&segment.CurrentLoad,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrSegmentNotFound
		}

		return nil, err
	}

	return &segment, nil
}

func (r *SegmentRepository) ListSegments(ctx context.Context) ([]domain.RoadSegment, error) {
	query := `
	SELECT segment_id, COALESCE(name, ''), COALESCE(osm_id, 0), capacity, current_load
	FROM road_segments
	ORDER BY segment_id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	defer rows.Close()

	var segments []domain.RoadSegment
	for rows.Next() {
		var segment domain.RoadSegment
		if err := rows.Scan(
			&segment.SegmentID,
			&segment.Name,
			&segment.OSMID,
			&segment.Capacity,
			&segment.CurrentLoad,
		); err != nil {
			return nil, err
		}

		segments = append(segments, segment)
	}

	return segments, rows.Err()
}

// ReleaseExpired decrements each segment's load by the number of its claims
// from bookings that ended strictly before threshold, but only for segments
// with no co-claimant: no other booking whose end_time is at or past the
// threshold. The whole computation runs in one serializable transaction, so
// the expiry and co-claimant checks see a single consistent snapshot even
// while reservations commit concurrently. A serialization conflict fails the
// run; the next scheduled run recomputes from current state.
func (r *SegmentRepository) ReleaseExpired(ctx context.Context, threshold time.Time) (int, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	defer tx.Rollback()

	// Association rows are never deleted, so the claim count includes
	// bookings released on earlier runs. GREATEST floors the result at zero
	// and the current_load > 0 guard keeps repeated runs from reporting
	// segments whose value cannot change, which makes the run idempotent.
	query := `
	UPDATE road_segments rs
	SET current_load = GREATEST(rs.current_load - expired.claims, 0)
	FROM (
		SELECT bs.segment_id, COUNT(*) AS claims
		FROM booking_segments bs
		JOIN bookings b ON b.id = bs.booking_id
		WHERE b.end_time < $1
		AND NOT EXISTS (
			SELECT 1
			FROM booking_segments bs2
			JOIN bookings b2 ON b2.id = bs2.booking_id
			WHERE bs2.segment_id = bs.segment_id
			  AND bs2.booking_id <> bs.booking_id
			  AND b2.end_time >= $1
		)
		GROUP BY bs.segment_id
	) AS expired
	WHERE rs.segment_id = expired.segment_id
	  AND rs.current_load > 0
	`

	result, err := tx.ExecContext(ctx, query, threshold)
	if err != nil {
		return 0, fmt.Errorf("release expired segments: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit release: %w", err)
	}

	return int(affected), nil
}

// lineStringWKT renders a polyline as a WKT LINESTRING in lon/lat axis order,
// matching the segment geometry stored in SRID 4326.
func lineStringWKT(route domain.Polyline) string {
	var sb strings.Builder
	sb.WriteString("LINESTRING(")

	for i, p := range route {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(strconv.FormatFloat(p.Lon, 'f', -1, 64))
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatFloat(p.Lat, 'f', -1, 64))
	}

	sb.WriteString(")")
	return sb.String()
}
