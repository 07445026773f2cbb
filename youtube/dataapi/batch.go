package dataapi

// MaxBatchSize is the largest number of ids videos.list accepts per request.
const MaxBatchSize = 50

// Batches splits ids into consecutive chunks of at most size ids, preserving
// order. A size outside 1..MaxBatchSize means MaxBatchSize. The result shares no
// memory with ids.
func Batches(ids []string, size int) [][]string {
	if size <= 0 || size > MaxBatchSize {
		size = MaxBatchSize
	}
	if len(ids) == 0 {
		return nil
	}

	owned := make([]string, len(ids))
	copy(owned, ids)

	batches := make([][]string, 0, (len(owned)+size-1)/size)
	for start := 0; start < len(owned); start += size {
		end := start + size
		if end > len(owned) {
			end = len(owned)
		}
		batches = append(batches, owned[start:end:end])
	}
	return batches
}
