package metadata

import "github.com/google/uuid"

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Not a resource handled by any loader. */
	ResourceTypeNone ResourceType = iota
	/** @brief OFF mesh resource type. */
	ResourceTypeMesh
)

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeMesh:
		return "mesh"
	default:
		return "none"
	}
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief Unique identifier assigned when the resource is loaded. */
	ID uuid.UUID
	/** @brief The name of the resource. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The resource type. */
	Type ResourceType
	/** @brief The size of the source file in bytes. */
	DataSize uint64
	/** @brief The resource data, an AnyMesh for mesh resources. */
	Data interface{}
}
