/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension owns at most one configuration singleton, stored under the
"_c:<package>" key. A configuration can be created from the genesis file
(InitConfig) or by a transaction (Save), and is removed with Delete once the
extension is shut down.
*/
package gconf
