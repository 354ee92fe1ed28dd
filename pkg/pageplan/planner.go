package pageplan

// PlanTasks splits the inclusive local interval [localStart, localEnd] into
// fetch tasks for a source paginated at sourcePageSize records per page.
//
// Tasks are emitted in increasing page order. Replaying them and
// concatenating the results yields exactly the records of the interval: the
// first task starts at localStart's offset, interior pages are fetched whole
// and the last task stops at localEnd.
func PlanTasks(localStart, localEnd, sourcePageSize int) ([]FetchTask, error) {
	if sourcePageSize < 1 {
		return nil, invalidRequest("source_page_size", "must be >= 1 (got %d)", sourcePageSize)
	}
	if localStart < 0 {
		return nil, invalidRequest("local_start", "must be >= 0 (got %d)", localStart)
	}
	if localEnd < localStart {
		return nil, invalidRequest("local_end", "must be >= local_start %d (got %d)", localStart, localEnd)
	}

	startPage := localStart/sourcePageSize + 1
	endPage := localEnd/sourcePageSize + 1

	tasks := make([]FetchTask, 0, endPage-startPage+1)
	for page := startPage; page <= endPage; page++ {
		var offset, count int
		switch {
		case page == startPage:
			offset = localStart % sourcePageSize
			if page == endPage {
				count = localEnd - localStart + 1
			} else {
				count = sourcePageSize - offset
			}
		case page == endPage:
			count = localEnd%sourcePageSize + 1
		default:
			count = sourcePageSize
		}
		tasks = append(tasks, FetchTask{PageNumber: page, OffsetInPage: offset, Count: count})
	}

	return tasks, nil
}
