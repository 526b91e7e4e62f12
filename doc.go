/*
Command starindex bins the Tycho-2 star catalog into a uniform sky grid
and writes the binned stars with a per-cell index, for star pattern matching
and plate solving tools that need every catalog star in a patch of sky
without searching the whole catalog.

Contents

  Program overview
  Command line usage
  Configuration file
  Input files
  Output format
  Algorithm outline


Program overview

Input is the Tycho-2 main catalog, as distributed in twenty files
tyc2.dat.00 through tyc2.dat.19, and supplement 1, suppl_1.dat and
suppl_2.dat.  Files may also be gzip compressed, with names ending in .gz.
Output is a single file holding, for each star, right ascension,
south polar distance, and V magnitude, sorted by grid cell, and an index
giving the position and number of stars in each cell.

Sample run:

  $ starindex --dir /data/tycho2
    /data/tycho2/tyc2.dat.00  127,497 primary    lines    127,456 kept (41 no photometry, 0 malformed, 0 faint)
    ...
  2,538,913 stars, magnitude 11.03 +/- 1.04
  grid 2.5 deg, 72 x 144 cells, 10,368 occupied, up to 2,361 stars per cell
  tycho2.idx (binary) id 3b8e0f9a-...

A catalog file that is missing or unreadable is reported and the remaining
files are still used.  The build fails only if no stars at all are loaded.

Use the companion command sistat to check an output file and print
statistics about it.


Command line usage

  starindex [flags]

  -c, --config string   YAML configuration file
      --dir string      directory of catalog files (default ".")
  -F, --fov float       field of view diameter, degrees, 0.1 to 60 (default 1)
  -M, --mag float       faintest magnitude, 5.0 to 12.0 (default 10)
  -N, --num int         stars in any shape, 3 to 10 (default 3)
      --step float      grid cell width, degrees, 0.1 to 180 (default 2.5)
      --frame string    supplement frame transform, icrs or precess (default "icrs")
  -S, --style string    output style, binary (1) or fits (2) (default "binary")
  -o, --output string   output file (default tycho2.idx or tycho2.fits)
      --workers int     catalog files read at once (default number of CPUs)
      --progress        show a progress bar on stderr
      --debug           debug logging
      --version         print the version

Flags given on the command line override the configuration file.  Settings
given nowhere take the defaults shown.

The field of view, faint limit and shape star count are recorded in the
output for the matcher that uses it.  Of them, only the faint limit affects
which stars are written.


Configuration file

The configuration file is YAML.  Any setting may be omitted.  A complete
file with default values:

  catalog:
    dir: .
    primary: [tyc2.dat.00, tyc2.dat.01, ..., tyc2.dat.19]
    supplement: [suppl_1.dat, suppl_2.dat]
  index:
    fov: 1
    faint: 10
    min_stars: 3
    step: 2.5
  epoch:
    supplement: 1991.25
    target: 2000
    frame: icrs
  output:
    path: ""
    style: binary
  workers: 8   # default is the number of CPUs

Relative catalog file names are taken relative to catalog.dir.


Input files

Lines of the main catalog carry a mean position at J2000 in columns 16-40.
A line with a flag in column 14 has no mean position and the observed
position in columns 153-177 is used instead.  Proper motions are in
columns 42-56 and BT and VT magnitudes in columns 111-116 and 124-129.

Supplement lines carry positions at the Hipparcos epoch J1991.25 in columns
16-40, proper motions in columns 42-56 and BT and VT magnitudes in columns
84-89 and 97-102.

When both BT and VT are given V is approximated as VT - 0.09 (BT - VT).
Otherwise whichever of the two is given is used.  Lines with neither are
skipped.


Output format

All values are stored as integers.  Right ascension is in milli-arcseconds,
0 to 360 degrees.  Declination is stored as south polar distance,
declination + 90 degrees, also in milli-arcseconds, so that it is never
negative.  Magnitudes are in thousandths.

The grid divides south polar distance and right ascension each into bands
of the configured step.  With ZD declination bands and ZR right ascension
bands a star falls in cell

  int(SPD / step) * ZR + int(RA / step)

Stars are sorted by cell, and within a cell by right ascension, south polar
distance, then magnitude.  The index holds for each cell the position of
the cell's first star, HEAD, and the number of stars, COUNT.  Empty cells
have COUNT 0 and HEAD equal to the position where the next occupied cell
begins.

Binary style, the default, is little endian:

  "STARIDX\n"
  header: version, step (mas), ZD, ZR, number of stars, min stars (uint32),
          epoch, fov, faint (float64), catalog id (16 bytes)
  catalog name, frame name, comment text (uint32 length, bytes)
  HEAD, COUNT   ZD*ZR uint32 each
  RA, SPD       uint32 per star
  MAG           int16 per star

FITS style holds the same data as a primary header with the metadata as
keywords, a binary table INDEX with columns HEAD and COUNT, and a binary
table STARS with columns RA, SPD, and MAG.  The unsigned columns are stored
with TZERO = 2147483648.

The catalog id is computed from the grid, index, and stars, so runs on the
same input produce identical files.  Output is written to a temporary file
and renamed into place only on success.


Algorithm outline

1.  Catalog files are read concurrently.  Stars of each file are collected
separately and the files concatenated in the order configured.

2.  Supplement stars are moved by their proper motion from J1991.25 to
J2000.  Right ascension motion is divided by cos(declination).  A star
carried over a pole comes down the other side, 180 degrees away in right
ascension.  With frame "precess" the positions are then precessed between
the two epochs.

3.  Stars are sorted in grid order.

4.  Stars are counted per cell and the counts summed into starting
positions.

5.  The index is checked: the heads are the running sum of counts, the
counts add to the number of stars, and every star lies in the cell whose
range holds it.

-------------
Public domain.
*/
package main
