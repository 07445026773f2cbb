// Package qualitube fetches video metadata and statistics from the YouTube
// Data API v3 and exposes them as typed records.
//
// Features:
//   - Batches of up to 50 ids per videos.list request
//   - Absent fields kept distinct from zero values
//   - Table export (CSV, JSON, aligned text) with a fixed column order
package qualitube
