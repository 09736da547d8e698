package assets

import "github.com/spaghettifunk/offmesh/engine/metadata"

type Loader interface {
	Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) // `interface{}` here allows loaders to accept their own parameter types
	Unload(*metadata.Resource) error
}
