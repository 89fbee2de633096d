// @title           ideaboard API
// @version         1.0
// @description     REST mirror of the ideaboard GraphQL operations. Anonymous access; no authentication.
// @BasePath        /api/v1
package api
