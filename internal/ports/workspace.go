package ports

// WorkspaceInitializer scaffolds the on-disk workspace layout.
type WorkspaceInitializer interface {
	Init(root string, force bool) error
}
