package main

import (
	"context"
	"fmt"
	"os"

	"github.com/walteh/ziprc/pkg/plan"
	"gitlab.com/tozd/go/errors"
)

func main() {
	ctx := context.Background()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		var emptyErr *plan.EmptyMatchError
		if errors.As(err, &emptyErr) {
			// Already rendered by the console as a MISSING line.
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "ziprc: %v\n", err)
		os.Exit(1)
	}
}
