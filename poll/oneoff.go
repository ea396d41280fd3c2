package poll

import "github.com/rs/zerolog/log"

// PollOneoff blocks until at least one of the sources named by handles is
// ready, then returns a readiness vector parallel to the input: element i
// reports the source named by handles[i].
//
// Validation is all-or-nothing: any unknown or disposed handle fails the
// whole call with ErrInvalidHandle before anything blocks, with no partial
// vector. An empty input returns an empty vector immediately. Duplicate
// handles are legal and evaluated independently. If any source is already
// ready the call returns without suspending; otherwise it suspends in
// exactly one place, the aggregated wait, and on success guarantees at
// least one true entry.
//
// There is no cancellation: a caller needing a bounded wait includes a
// timer source in the list. Each call is linear in len(handles).
func (r *Registry) PollOneoff(handles []Handle) ([]bool, error) {
	sources := make([]Pollable, len(handles))
	for i, h := range handles {
		p, err := r.Resolve(h)
		if err != nil {
			return nil, err
		}
		sources[i] = p
	}
	r.stats.Polls.Inc()

	ready := make([]bool, len(sources))
	if len(sources) == 0 {
		return ready, nil
	}

	for {
		any := false
		for i, s := range sources {
			ready[i] = s.IsReady()
			any = any || ready[i]
		}
		if any {
			return ready, nil
		}

		// One blocking suspension over every source's wait primitive. The
		// wakeup only hints that something may have changed; the scan
		// above runs again and decides. The set is rebuilt each pass since
		// a source may re-arm its primitive between waits.
		set := new(WaitSet)
		for _, s := range sources {
			s.Register(set)
		}
		r.stats.Suspensions.Inc()
		log.Debug().Int("sources", len(sources)).Msg("poll-oneoff suspending")
		if err := set.Wait(); err != nil {
			return nil, err
		}
	}
}
