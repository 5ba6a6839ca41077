/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each package owns a single configuration object, stored under "_c:<pkg>".
The object is loaded from the "conf" section of the genesis file and read back
by the package when it needs it. A missing configuration is a setup error.
*/
package gconf
