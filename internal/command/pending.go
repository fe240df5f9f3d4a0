package command

// Pending is the handle of an asynchronous execution
type Pending struct {
	done   chan struct{}
	result Result
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

func (p *Pending) complete(r Result) {
	p.result = r
	close(p.done)
}

// Done is closed once the result is available
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the command has exited and returns its result.
// It may be called any number of times.
func (p *Pending) Wait() Result {
	<-p.done
	return p.result
}

// WaitAll waits for every pending execution and returns the results in order
func WaitAll(pending ...*Pending) []Result {
	results := make([]Result, len(pending))
	for i, p := range pending {
		results[i] = p.Wait()
	}
	return results
}

// Resolve returns a Pending for a result that is already known, delivering it
// to handler from a separate goroutine the same way Start does.
func Resolve(r Result, handler Handler) *Pending {
	p := newPending()
	go func() {
		if handler != nil {
			handler(r)
		}
		p.complete(r)
	}()
	return p
}
