package landing

import "context"

type fakeWaitlist struct {
	joined  []string
	joinErr error
}

func (f *fakeWaitlist) Join(_ context.Context, email string) error {
	if f.joinErr != nil {
		return f.joinErr
	}
	f.joined = append(f.joined, email)
	return nil
}
