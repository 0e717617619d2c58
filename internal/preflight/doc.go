// Package preflight provides readiness checks for external services
// and filesystem paths that adscribe depends on.
//
// These checks run in two contexts:
//   - The daemon runs RunAll once at startup through the workflow manager;
//     failures are logged as warnings so a missing optional tool does not
//     block queue items that never need it.
//   - The CLI "adscribe status" command uses individual check functions
//     (CheckAdsLibraryFromConfig, CheckDirectoryAccess, CheckSystemDeps)
//     to display service health.
//
// Feature-gated checks are skipped when their feature is not configured.
package preflight
