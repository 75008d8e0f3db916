package helpers

// ChunkStrings splits ids into consecutive chunks of at most size elements.
// Used to respect the store's in-set filter ceiling.
func ChunkStrings(ids []string, size int) [][]string {
	if size <= 0 || len(ids) == 0 {
		return nil
	}
	var chunks [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
