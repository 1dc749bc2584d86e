package catalog

// LocalProducts is an in-process catalog override. When non-empty it is
// authoritative and the cache never queries the products table, which is
// useful for offline or demo deployments. Leave empty to serve the table.
var LocalProducts = []Product{}
