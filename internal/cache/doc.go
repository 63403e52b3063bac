// Package cache provides a small generic cache with a soft size limit.
//
// The emitter keeps tessellated primitives in one so that the teeth of a
// gear, which share width and height, are built once:
//
//	c := cache.New[key, *mesh.Mesh](256)
//	m, err := c.GetOrCreate(k, build)
//
// When the soft limit is exceeded the least recently used quarter of the
// entries is dropped. A Cache is safe for concurrent use and must not be
// copied after creation.
package cache
