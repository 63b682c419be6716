package domain

// LoaderKind names a mod-loader family.
type LoaderKind string

const (
	LoaderVanilla  LoaderKind = "vanilla"
	LoaderFabric   LoaderKind = "fabric"
	LoaderQuilt    LoaderKind = "quilt"
	LoaderNeoForge LoaderKind = "neoforge"
	LoaderForge    LoaderKind = "forge"
)

// InstallPlan is the resolved install request handed over by the catalog
// subsystem: which engine version to provision and which loader, if any, to
// layer on top. Mods are assumed to be staged by the host already.
type InstallPlan struct {
	EngineVersion string
	Loader        LoaderKind
	// LoaderVersion is empty to request the latest stable build.
	LoaderVersion string
	ProfileID     string
}
