package ports

import "context"

// AdminRegistry is the persisted list of privileged actors that currently
// hold an open session start. It is a soft cap, not a lock: entries survive
// restarts and are only cleared by an explicit reset.
type AdminRegistry interface {
	List(ctx context.Context) ([]string, error)
	ReplaceAll(ctx context.Context, actors []string) error
}
